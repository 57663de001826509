package sdk

import (
	"context"
	"io"
	"net/http"

	"github.com/bloomify/bloomify/sdk/go/routes"
)

// ChatbotClient fetches the chatbot widget.
type ChatbotClient struct {
	client *Client
}

// Fragment returns the chatbot markup verbatim. The response is opaque to
// the SDK; callers insert it into their page as-is. No auth headers are
// attached, the endpoint is public and serves HTML, not JSON.
func (c *ChatbotClient) Fragment(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.client.buildURL(routes.Chatbot), nil)
	if err != nil {
		return "", err
	}
	resp, err := c.client.send(req, "chatbot.fragment")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
