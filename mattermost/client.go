package mattermost

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/pwncrew/ctfherald"
)

// Client posts messages to one incoming-webhook endpoint.
type Client struct {
	url string
	c   *http.Client
}

func NewClient(webhookURL string) *Client {
	return &Client{
		url: webhookURL,
		c:   http.DefaultClient,
	}
}

// Send posts a single message to the webhook.
func (c *Client) Send(ctx context.Context, msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode <= 499 {
		return ctfherald.Errorf(ctfherald.EINVALID, "Webhook rejected the message with status %d.", resp.StatusCode)
	} else if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ctfherald.Errorf(ctfherald.EINTERNAL, "Webhook responded with status %d.", resp.StatusCode)
	}

	return nil
}
