// Command lambda runs the bot once per invocation, for an EventBridge schedule.
//
// A run that did not publish still returns a nil error: asynchronous invocations are
// retried by Lambda on error, and a failed publish must not be retried.
package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/Roma7-7-7/finnish-word-bot/internal/app"
	"github.com/Roma7-7-7/finnish-word-bot/internal/config"
)

type Response struct {
	Published bool   `json:"published"`
	Message   string `json:"message,omitempty"`
}

type handler struct {
	getConfig func(ctx context.Context) (*config.Bot, error)
	out       io.Writer
}

func (h handler) Handle(ctx context.Context) (Response, error) {
	conf, err := h.getConfig(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to get config", "error", err) //nolint:sloglint // app logger is not configured yet
		return Response{}, err
	}

	log := app.NewLogger(conf.Dev)
	a, err := app.New(ctx, conf, log, h.out, false)
	if err != nil {
		log.ErrorContext(ctx, "failed to create app", "error", err)
		return Response{}, err
	}
	defer a.Close()

	if !a.Run(ctx) {
		return Response{Published: false, Message: "post was not published"}, nil
	}
	return Response{Published: true}, nil
}

func main() {
	lambda.Start(handler{getConfig: config.GetBot, out: os.Stdout}.Handle)
}
