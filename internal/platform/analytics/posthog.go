// Package analytics wraps the PostHog client so callers can use it whether or not it was configured.
package analytics

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// DefaultEndpoint is used when no endpoint is configured.
const DefaultEndpoint = "https://eu.i.posthog.com"

// Client is a nil-tolerant wrapper around posthog.Client.
type Client struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// New creates a client. An empty apiKey yields a client that drops every event.
func New(apiKey, endpoint string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, not initializing posthog client.")
		return &Client{logger: logger}
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize posthog client", slog.String("error", err.Error()))
		return &Client{logger: logger}
	}
	logger.Info("Posthog client initialized", slog.String("endpoint", endpoint))
	return &Client{posthogClient: client, logger: logger}
}

// IsInitialized reports whether events are actually sent.
func (c *Client) IsInitialized() bool {
	return c != nil && c.posthogClient != nil
}

// Enqueue queues one event for distinctID.
func (c *Client) Enqueue(distinctID, event string, properties map[string]any) {
	if !c.IsInitialized() {
		return
	}
	err := c.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil {
		c.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes pending events.
func (c *Client) Close() error {
	if !c.IsInitialized() {
		return nil
	}
	return c.posthogClient.Close()
}
