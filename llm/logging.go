package llm

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// LoggingMiddleware returns a Middleware that logs each provider call with
// model, provider, duration, and token usage.
func LoggingMiddleware(log *logrus.Logger) Middleware {
	return func(ctx context.Context, req Request, next func(context.Context, Request) (*Response, error)) (*Response, error) {
		start := time.Now()
		resp, err := next(ctx, req)
		elapsed := time.Since(start)

		fields := logrus.Fields{
			"provider": req.Provider,
			"model":    req.Model,
			"duration": elapsed.Round(time.Millisecond).String(),
		}
		if err != nil {
			log.WithFields(fields).WithError(err).Warn("llm call failed")
			return nil, err
		}

		fields["tokens"] = resp.Usage.TotalTokens
		log.WithFields(fields).Debug("llm call completed")
		return resp, nil
	}
}
