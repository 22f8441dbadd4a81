package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultUserAgent = "splunk-releases/1.0"
	DefaultTimeout   = 30 * time.Second
)

// Fetches a page body. Returns an error for transport failures and non 200 responses.
type PageFetcher = func(ctx context.Context, url string) ([]byte, error)

type fetchResult struct {
	statusCode int
	body       []byte
	errs       []error
}

// AgentFetcher fetches pages with the fiber http client. A timeout of zero
// means DefaultTimeout. Cancelling ctx returns immediately, the request
// itself ends at the latest after timeout.
func AgentFetcher(timeout time.Duration, userAgent string) PageFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return func(ctx context.Context, url string) ([]byte, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		agent := fiber.AcquireAgent()
		req := agent.Request()
		req.Header.SetMethod(fiber.MethodGet)
		req.SetRequestURI(url)
		agent.UserAgent(userAgent)
		agent.Timeout(timeout)

		if err := agent.Parse(); err != nil {
			fiber.ReleaseAgent(agent)
			return nil, fmt.Errorf("agent parse: %w", err)
		}

		done := make(chan fetchResult, 1)
		go func() {
			// Bytes releases the agent.
			statusCode, body, errs := agent.Bytes()
			done <- fetchResult{statusCode: statusCode, body: body, errs: errs}
		}()

		var result fetchResult
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case result = <-done:
		}
		if len(result.errs) > 0 {
			return nil, fmt.Errorf("agent bytes: %v", result.errs)
		}
		if result.statusCode != fiber.StatusOK {
			return nil, fmt.Errorf("invalid status code %d", result.statusCode)
		}
		return result.body, nil
	}
}
