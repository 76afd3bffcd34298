package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/episodenotes/models"
	"github.com/a-h/jsonapi"
)

func New(baseURL string) Client {
	return Client{
		baseURL: baseURL,
	}
}

type Client struct {
	baseURL string
}

func (c Client) Health(ctx context.Context) (resp models.HealthResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("health").String()
	if err != nil {
		return resp, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return resp, fmt.Errorf("failed to create request: %w", err)
	}
	res, err := jsonapi.Raw(httpReq)
	if err != nil {
		return resp, fmt.Errorf("failed to perform HTTP request: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		body, _ := io.ReadAll(res.Body)
		return resp, jsonapi.InvalidStatusError{
			Status: res.StatusCode,
			Body:   string(body),
		}
	}
	if err = json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return resp, fmt.Errorf("failed to decode response: %w", err)
	}
	return resp, nil
}

func (c Client) EpisodeNotesPost(ctx context.Context, req models.EpisodeNotesRequest) (resp models.EpisodeNotesResponse, err error) {
	url, err := jsonapi.URL(c.baseURL).Path("ai", "episode_notes").String()
	if err != nil {
		return resp, err
	}
	return jsonapi.Post[models.EpisodeNotesRequest, models.EpisodeNotesResponse](ctx, url, req)
}
