package twitter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dghubble/oauth1"
	"github.com/go-resty/resty/v2"
)

const DefaultAPIURL = "https://api.twitter.com"

var errNoTweetID = errors.New("response has no tweet id")

type (
	// Credentials are the OAuth 1.0a user context secrets of the posting account.
	Credentials struct {
		ConsumerKey    string
		ConsumerSecret string
		AccessToken    string
		AccessSecret   string
	}

	CreateTweetRequest struct {
		Text string `json:"text"`
	}

	CreateTweetResponse struct {
		Data struct {
			ID   string `json:"id"`
			Text string `json:"text"`
		} `json:"data"`
	}

	Client struct {
		client *resty.Client
		log    *slog.Logger
	}
)

func NewClient(creds Credentials, apiURL string, log *slog.Logger) *Client {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	httpClient := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret).
		Client(context.Background(), oauth1.NewToken(creds.AccessToken, creds.AccessSecret))

	return &Client{
		client: resty.NewWithClient(httpClient).
			SetBaseURL(apiURL).
			SetHeader("Content-Type", "application/json"),
		log: log,
	}
}

// Publish creates a tweet and returns its ID.
func (c *Client) Publish(ctx context.Context, text string) (string, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(CreateTweetRequest{Text: text}).
		Post("/2/tweets")
	if err != nil {
		return "", fmt.Errorf("create tweet: %w", err)
	}

	if !resp.IsSuccess() {
		c.log.ErrorContext(ctx, "unexpected response",
			"status", strconv.Itoa(resp.StatusCode()),
			"response", resp.String(),
		)
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	var res CreateTweetResponse
	if err = json.Unmarshal(resp.Body(), &res); err != nil {
		return "", fmt.Errorf("unmarshal create tweet response: %w", err)
	}
	if res.Data.ID == "" {
		return "", errNoTweetID
	}

	return res.Data.ID, nil
}
