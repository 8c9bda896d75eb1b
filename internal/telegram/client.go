package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	tb "gopkg.in/telebot.v3"
)

type (
	Client struct {
		bot    *tb.Bot
		chatID tb.ChatID
		log    *slog.Logger
	}

	Option func(*tb.Settings)
)

// WithAPIURL points the client at a different Bot API server.
func WithAPIURL(url string) Option {
	return func(s *tb.Settings) {
		s.URL = url
	}
}

// NewClient creates a client posting to a single chat or channel. It does not call
// the Bot API until the first post.
func NewClient(token string, chatID int64, log *slog.Logger, opts ...Option) (*Client, error) {
	settings := tb.Settings{
		Token:   token,
		Offline: true,
	}
	for _, opt := range opts {
		opt(&settings)
	}

	b, err := tb.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	return &Client{
		bot:    b,
		chatID: tb.ChatID(chatID),
		log:    log,
	}, nil
}

// Publish sends text as a plain message and returns the message ID.
func (c *Client) Publish(ctx context.Context, text string) (string, error) {
	msg, err := c.bot.Send(c.chatID, text, tb.NoPreview)
	if err != nil {
		c.log.ErrorContext(ctx, "failed to send message", "chat_id", int64(c.chatID), "error", err)
		return "", fmt.Errorf("send message: %w", err)
	}

	return strconv.Itoa(msg.ID), nil
}
