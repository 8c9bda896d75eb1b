package config

import (
	"context"
	"fmt"
	"log/slog"
	"time"
	_ "time/tzdata" // the bot may run where no zoneinfo is installed

	"github.com/kelseyhightower/envconfig"

	"github.com/Roma7-7-7/finnish-word-bot/internal/schedule"
)

const (
	paramTwitterAPIKey       = "/finnish-word-bot/prod/twitter-api-key"
	paramTwitterAPISecret    = "/finnish-word-bot/prod/twitter-api-secret"
	paramTwitterAccessToken  = "/finnish-word-bot/prod/twitter-access-token"
	paramTwitterAccessSecret = "/finnish-word-bot/prod/twitter-access-secret"
)

type (
	Fetch struct {
		Attempts      uint          `envconfig:"ATTEMPTS" default:"3" validate:"min=1,max=10"`
		Delay         time.Duration `envconfig:"DELAY" default:"5s"`
		RecordTimeout time.Duration `envconfig:"RECORD_TIMEOUT" default:"10s" validate:"gt=0"`
		ListTimeout   time.Duration `envconfig:"LIST_TIMEOUT" default:"30s" validate:"gt=0"`
	}

	Schedule struct {
		Cron     string `envconfig:"CRON" default:"0 9 * * *" validate:"required"`
		Location string `envconfig:"LOCATION" default:"Europe/Helsinki" validate:"required"`
	}

	// Twitter holds the posting account secrets. They are read from the unprefixed
	// TWITTER_* variables and are not validated: bad credentials surface when posting.
	Twitter struct {
		APIURL       string `envconfig:"API_URL" default:"https://api.twitter.com"`
		APIKey       string `envconfig:"API_KEY"`
		APISecret    string `envconfig:"API_SECRET"`
		AccessToken  string `envconfig:"ACCESS_TOKEN"`
		AccessSecret string `envconfig:"ACCESS_SECRET"`
	}

	Bot struct {
		Dev            bool   `envconfig:"DEV" default:"false"`
		Source         string `envconfig:"SOURCE" default:"record" validate:"oneof=record list catalog"`
		Publisher      string `envconfig:"PUBLISHER" default:"twitter" validate:"oneof=twitter telegram stdout"`
		RecordURL      string `envconfig:"RECORD_URL" default:"https://www.suomisanakirja.fi/wod.php" validate:"required,url"`
		ListURL        string `envconfig:"LIST_URL" validate:"omitempty,url"`
		DictionaryURL  string `envconfig:"DICTIONARY_URL" default:"https://www.suomisanakirja.fi/" validate:"required,url"`
		DBPath         string `envconfig:"DB_PATH" default:"words.db" validate:"required"`
		TelegramToken  string `envconfig:"TELEGRAM_TOKEN" validate:"required_if=Publisher telegram"`
		TelegramChatID int64  `envconfig:"TELEGRAM_CHAT_ID" validate:"required_if=Publisher telegram"`
		Fetch          Fetch
		Schedule       Schedule
		Twitter        Twitter `ignored:"true"`
	}
)

func (s Schedule) TimeLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Location)
	if err != nil {
		return nil, fmt.Errorf("load location: %w", err)
	}
	return loc, nil
}

func (s Schedule) MustTimeLocation() *time.Location {
	loc, err := s.TimeLocation()
	if err != nil {
		panic(fmt.Sprintf("failed to load location %s: %v", s.Location, err))
	}
	return loc
}

func (t Twitter) complete() bool {
	return t.APIKey != "" && t.APISecret != "" && t.AccessToken != "" && t.AccessSecret != ""
}

func GetBot(ctx context.Context) (*Bot, error) {
	return getBot(ctx, FetchAWSParams)
}

// getBot never fails on missing Twitter secrets: a run still fetches and formats, and
// the publish step reports the bad credentials.
func getBot(ctx context.Context, fetch paramsFetcher) (*Bot, error) {
	res := &Bot{}
	if err := envconfig.Process("BOT", res); err != nil {
		return nil, fmt.Errorf("parse bot environment: %w", err)
	}
	if err := envconfig.Process("TWITTER", &res.Twitter); err != nil {
		return nil, fmt.Errorf("parse twitter environment: %w", err)
	}

	if !res.Dev && res.Publisher == PublisherTwitter && !res.Twitter.complete() {
		if err := setBotProdConfig(ctx, res, fetch); err != nil {
			slog.WarnContext(ctx, "failed to load twitter secrets, using environment values", "error", err) //nolint:sloglint // app logger is not configured yet
		}
	}

	return validateBot(res)
}

func validateBot(conf *Bot) (*Bot, error) {
	errs := structErrors(conf)
	if conf.Source == SourceList && conf.ListURL == "" {
		errs = append(errs, "list url is required for the list source")
	}
	if err := schedule.ParseSpec(conf.Schedule.Cron); err != nil {
		errs = append(errs, fmt.Sprintf("invalid schedule: %s", err))
	}
	if _, err := conf.Schedule.TimeLocation(); err != nil {
		errs = append(errs, fmt.Sprintf("invalid timezone: %s", err))
	}

	if err := joinErrors(errs); err != nil {
		return nil, err
	}
	return conf, nil
}

type paramsFetcher func(ctx context.Context, keys ...string) (map[string]string, error)

// setBotProdConfig fills in the Twitter secrets missing from the environment.
func setBotProdConfig(ctx context.Context, target *Bot, fetch paramsFetcher) error {
	parameters, err := fetch(ctx,
		paramTwitterAPIKey,
		paramTwitterAPISecret,
		paramTwitterAccessToken,
		paramTwitterAccessSecret,
	)
	if err != nil {
		return fmt.Errorf("get parameters: %w", err)
	}

	for name, value := range parameters {
		switch name {
		case paramTwitterAPIKey:
			setIfEmpty(&target.Twitter.APIKey, value)
		case paramTwitterAPISecret:
			setIfEmpty(&target.Twitter.APISecret, value)
		case paramTwitterAccessToken:
			setIfEmpty(&target.Twitter.AccessToken, value)
		case paramTwitterAccessSecret:
			setIfEmpty(&target.Twitter.AccessSecret, value)
		}
	}

	return nil
}

func setIfEmpty(target *string, value string) {
	if *target == "" {
		*target = value
	}
}
