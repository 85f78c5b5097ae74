// Package llm provides a provider-agnostic text-generation client that wraps
// the gollm library (github.com/teilomillet/gollm).
//
// # Architecture
//
// The package is layered:
//
//   - ProviderAdapter interface and shared request/response types
//   - Retry logic and error classification helpers
//   - Client with provider routing and middleware
//   - High-level Generate and GenerateObject functions
//
// # Quick Start
//
// Using the Client directly:
//
//	adapter, _ := llm.NewGollmAdapter("groq", os.Getenv("GROQ_API_KEY"))
//	client := llm.NewClient(llm.WithProvider("groq", adapter))
//
//	resp, _ := client.Complete(ctx, llm.Request{
//	    Model:    "llama3-8b-8192",
//	    Messages: []llm.Message{llm.UserMessage("Hello")},
//	})
//	fmt.Println(resp.Text)
//
// Using the high-level API:
//
//	result, err := llm.Generate(ctx, llm.GenerateOptions{
//	    Client: client,
//	    Model:  "llama3-8b-8192",
//	    Prompt: "List three PDF parsing strategies",
//	})
//
// GenerateObject adds JSON-schema instructions to the system prompt and
// parses the response as JSON, for providers without native structured
// output.
package llm
