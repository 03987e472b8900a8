package ctftime

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pwncrew/ctfherald"
)

// Client talks to CTFtime. Both upstream representations are served from the
// same origin: the v1 JSON API and the upcoming-events RSS feed.
type Client struct {
	c *http.Client
}

func NewClient() *Client {
	return &Client{
		c: http.DefaultClient,
	}
}

// EventFilter represents the query window passed to FindEvents().
type EventFilter struct {
	Start  *time.Time
	Finish *time.Time

	Limit int
}

// FindEvents fetches upcoming events from the JSON API, filtered by the
// given window, and decodes them into canonical events.
func (c *Client) FindEvents(ctx context.Context, filter EventFilter) ([]*ctfherald.Event, error) {
	u, err := url.Parse(ctfherald.BaseURL + "/api/v1/events/")
	if err != nil {
		return nil, err
	}

	q := u.Query()

	if filter.Limit != 0 {
		q.Set("limit", strconv.Itoa(filter.Limit))
	}

	if filter.Start != nil {
		q.Set("start", strconv.FormatInt(filter.Start.Unix(), 10))
	}

	if filter.Finish != nil {
		q.Set("finish", strconv.FormatInt(filter.Finish.Unix(), 10))
	}

	u.RawQuery = q.Encode()

	body, err := c.get(ctx, u.String())
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return DecodeEvents(body)
}

// UpcomingFeed fetches the upcoming-events RSS feed and decodes it into
// canonical events.
func (c *Client) UpcomingFeed(ctx context.Context) ([]*ctfherald.Event, error) {
	body, err := c.get(ctx, ctfherald.BaseURL+"/event/list/upcoming/rss/")
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return DecodeFeed(body)
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	// Workaround for CTFtime blocking the default Go User-Agent.
	req.Header.Add("User-Agent", "curl/8.5.0")

	resp, err := c.c.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 && resp.StatusCode <= 499 {
		resp.Body.Close()
		return nil, ctfherald.Errorf(ctfherald.ENOTFOUND, "Events not found.")
	} else if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, ctfherald.Errorf(ctfherald.EINTERNAL, "CTFtime responded with status %d.", resp.StatusCode)
	}

	return resp.Body, nil
}
