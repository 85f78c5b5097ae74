package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// GenerateOptions configures a high-level Generate call.
type GenerateOptions struct {
	Model         string
	Prompt        string    // simple text prompt (mutually exclusive with Messages)
	Messages      []Message // full conversation (mutually exclusive with Prompt)
	System        string
	Temperature   *float64
	TopP          *float64
	MaxTokens     *int
	StopSequences []string
	Provider      string
	MaxRetries    int // default 2
	Client        *Client
}

// GenerateResult is returned by Generate and GenerateObject.
type GenerateResult struct {
	Text         string       `json:"text"`
	FinishReason FinishReason `json:"finish_reason"`
	Usage        Usage        `json:"usage"`
	Response     Response     `json:"response"`
	Output       interface{}  `json:"output,omitempty"` // set by GenerateObject
}

// Generate is the high-level blocking generation function. It wraps
// Client.Complete with automatic retries and prompt standardization.
func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	if opts.Prompt != "" && len(opts.Messages) > 0 {
		return nil, &ConfigurationError{SDKError: SDKError{
			Message: "cannot specify both prompt and messages",
		}}
	}
	if opts.Client == nil {
		return nil, &ConfigurationError{SDKError: SDKError{
			Message: "no client configured",
		}}
	}

	retryPolicy := DefaultRetryPolicy()
	if opts.MaxRetries > 0 {
		retryPolicy.MaxRetries = opts.MaxRetries
	}

	messages := opts.Messages
	if opts.Prompt != "" {
		messages = []Message{UserMessage(opts.Prompt)}
	}
	if opts.System != "" {
		messages = append([]Message{SystemMessage(opts.System)}, messages...)
	}

	req := Request{
		Model:         opts.Model,
		Messages:      messages,
		Provider:      opts.Provider,
		Temperature:   opts.Temperature,
		TopP:          opts.TopP,
		MaxTokens:     opts.MaxTokens,
		StopSequences: opts.StopSequences,
	}

	resp, err := Retry(ctx, retryPolicy, func(ctx context.Context) (*Response, error) {
		return opts.Client.Complete(ctx, req)
	})
	if err != nil {
		return nil, err
	}

	return &GenerateResult{
		Text:         resp.Text,
		FinishReason: resp.FinishReason,
		Usage:        resp.Usage,
		Response:     *resp,
	}, nil
}

// GenerateObject generates structured output. The schema is injected into the
// system prompt because providers reachable through gollm lack native
// structured-output support; the response text is parsed as JSON into out.
func GenerateObject(ctx context.Context, opts GenerateOptions, schema map[string]interface{}, out interface{}) (*GenerateResult, error) {
	schemaJSON, _ := json.MarshalIndent(schema, "", "  ")
	schemaInstruction := fmt.Sprintf(
		"\nYou must respond with valid JSON matching this schema:\n```json\n%s\n```\nRespond ONLY with the JSON, no other text.",
		string(schemaJSON),
	)

	if opts.System != "" {
		opts.System += schemaInstruction
	} else {
		opts.System = schemaInstruction
	}

	result, err := Generate(ctx, opts)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(ExtractJSON(result.Text)), out); err != nil {
		return nil, &NoObjectGeneratedError{SDKError: SDKError{
			Message: fmt.Sprintf("failed to parse structured output: %v", err),
			Cause:   err,
		}}
	}

	result.Output = out
	return result, nil
}
