package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for k, v := range env {
		t.Setenv(k, v)
	}
}

func TestGetBot_Defaults(t *testing.T) {
	setEnv(t, map[string]string{
		"BOT_DEV":               "true",
		"TWITTER_API_KEY":       "key",
		"TWITTER_API_SECRET":    "secret",
		"TWITTER_ACCESS_TOKEN":  "token",
		"TWITTER_ACCESS_SECRET": "token-secret",
	})

	conf, err := GetBot(context.Background())
	require.NoError(t, err)

	assert.True(t, conf.Dev)
	assert.Equal(t, SourceRecord, conf.Source)
	assert.Equal(t, PublisherTwitter, conf.Publisher)
	assert.Equal(t, "https://www.suomisanakirja.fi/wod.php", conf.RecordURL)
	assert.Equal(t, uint(3), conf.Fetch.Attempts)
	assert.Equal(t, 5*time.Second, conf.Fetch.Delay)
	assert.Equal(t, 10*time.Second, conf.Fetch.RecordTimeout)
	assert.Equal(t, 30*time.Second, conf.Fetch.ListTimeout)
	assert.Equal(t, "0 9 * * *", conf.Schedule.Cron)
	assert.Equal(t, "Europe/Helsinki", conf.Schedule.MustTimeLocation().String())
	assert.Equal(t, Twitter{
		APIURL:       "https://api.twitter.com",
		APIKey:       "key",
		APISecret:    "secret",
		AccessToken:  "token",
		AccessSecret: "token-secret",
	}, conf.Twitter)
}

func TestGetBot_Overrides(t *testing.T) {
	setEnv(t, map[string]string{
		"BOT_DEV":               "true",
		"BOT_SOURCE":            "list",
		"BOT_LIST_URL":          "https://example.com/words.txt",
		"BOT_PUBLISHER":         "telegram",
		"BOT_TELEGRAM_TOKEN":    "123:abc",
		"BOT_TELEGRAM_CHAT_ID":  "-100123",
		"BOT_FETCH_ATTEMPTS":    "5",
		"BOT_FETCH_DELAY":       "1s",
		"BOT_SCHEDULE_CRON":     "30 7 * * *",
		"BOT_SCHEDULE_LOCATION": "UTC",
	})

	conf, err := GetBot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, SourceList, conf.Source)
	assert.Equal(t, "https://example.com/words.txt", conf.ListURL)
	assert.Equal(t, PublisherTelegram, conf.Publisher)
	assert.Equal(t, int64(-100123), conf.TelegramChatID)
	assert.Equal(t, uint(5), conf.Fetch.Attempts)
	assert.Equal(t, time.Second, conf.Fetch.Delay)
	assert.Equal(t, "30 7 * * *", conf.Schedule.Cron)
}

func TestGetBot_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown source",
			env:     map[string]string{"BOT_SOURCE": "rss"},
			wantErr: "Bot.Source must satisfy oneof",
		},
		{
			name:    "unknown publisher",
			env:     map[string]string{"BOT_PUBLISHER": "mastodon"},
			wantErr: "Bot.Publisher must satisfy oneof",
		},
		{
			name:    "list source without url",
			env:     map[string]string{"BOT_SOURCE": "list"},
			wantErr: "list url is required",
		},
		{
			name:    "telegram without token",
			env:     map[string]string{"BOT_PUBLISHER": "telegram", "BOT_TELEGRAM_CHAT_ID": "1"},
			wantErr: "Bot.TelegramToken must satisfy required_if",
		},
		{
			name:    "zero attempts",
			env:     map[string]string{"BOT_FETCH_ATTEMPTS": "0"},
			wantErr: "Bot.Fetch.Attempts must satisfy min=1",
		},
		{
			name:    "bad cron",
			env:     map[string]string{"BOT_SCHEDULE_CRON": "daily please"},
			wantErr: "invalid schedule",
		},
		{
			name:    "bad timezone",
			env:     map[string]string{"BOT_SCHEDULE_LOCATION": "Mars/Olympus"},
			wantErr: "invalid timezone",
		},
		{
			name:    "bad duration",
			env:     map[string]string{"BOT_FETCH_DELAY": "soon"},
			wantErr: "parse bot environment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BOT_DEV", "true")
			t.Setenv("BOT_PUBLISHER", "stdout")
			setEnv(t, tt.env)

			_, err := GetBot(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetBot_ProdSecrets(t *testing.T) {
	t.Run("secrets store unavailable", func(t *testing.T) {
		setEnv(t, map[string]string{
			"BOT_DEV":         "false",
			"TWITTER_API_KEY": "key",
		})

		var calls int
		conf, err := getBot(context.Background(), func(context.Context, ...string) (map[string]string, error) {
			calls++
			return nil, errors.New("no credentials in chain")
		})
		require.NoError(t, err)

		assert.Equal(t, 1, calls)
		assert.Equal(t, "key", conf.Twitter.APIKey)
		assert.Empty(t, conf.Twitter.APISecret)
		assert.Empty(t, conf.Twitter.AccessToken)
		assert.Empty(t, conf.Twitter.AccessSecret)
	})

	t.Run("secrets filled from store", func(t *testing.T) {
		setEnv(t, map[string]string{"BOT_DEV": "false"})

		conf, err := getBot(context.Background(), func(context.Context, ...string) (map[string]string, error) {
			return map[string]string{
				paramTwitterAPIKey:       "key",
				paramTwitterAPISecret:    "secret",
				paramTwitterAccessToken:  "token",
				paramTwitterAccessSecret: "token-secret",
			}, nil
		})
		require.NoError(t, err)

		assert.True(t, conf.Twitter.complete())
	})

	t.Run("store not used for other publishers", func(t *testing.T) {
		setEnv(t, map[string]string{
			"BOT_DEV":       "false",
			"BOT_PUBLISHER": "stdout",
		})

		_, err := getBot(context.Background(), func(context.Context, ...string) (map[string]string, error) {
			t.Fatal("secrets store must not be called")
			return nil, nil
		})
		require.NoError(t, err)
	})
}

func TestSetBotProdConfig(t *testing.T) {
	conf := &Bot{Twitter: Twitter{APIKey: "from-env"}}
	var gotKeys []string

	err := setBotProdConfig(context.Background(), conf, func(_ context.Context, keys ...string) (map[string]string, error) {
		gotKeys = keys
		return map[string]string{
			paramTwitterAPIKey:       "from-ssm",
			paramTwitterAPISecret:    "secret",
			paramTwitterAccessToken:  "token",
			paramTwitterAccessSecret: "token-secret",
		}, nil
	})
	require.NoError(t, err)

	assert.Len(t, gotKeys, 4)
	assert.Equal(t, "from-env", conf.Twitter.APIKey)
	assert.Equal(t, "secret", conf.Twitter.APISecret)
	assert.Equal(t, "token", conf.Twitter.AccessToken)
	assert.Equal(t, "token-secret", conf.Twitter.AccessSecret)

	err = setBotProdConfig(context.Background(), &Bot{}, func(context.Context, ...string) (map[string]string, error) {
		return nil, errors.New("access denied")
	})
	require.ErrorContains(t, err, "access denied")
}

type fakeParametersClient struct {
	out *ssm.GetParametersOutput
	err error
	in  *ssm.GetParametersInput
}

func (f *fakeParametersClient) GetParameters(_ context.Context, in *ssm.GetParametersInput, _ ...func(*ssm.Options)) (*ssm.GetParametersOutput, error) {
	f.in = in
	return f.out, f.err
}

func TestFetchParams(t *testing.T) {
	t.Run("all found", func(t *testing.T) {
		client := &fakeParametersClient{out: &ssm.GetParametersOutput{
			Parameters: []types.Parameter{
				{Name: aws.String("/a"), Value: aws.String("1")},
				{Name: aws.String("/b"), Value: aws.String("2")},
			},
		}}

		got, err := fetchParams(context.Background(), client, "/a", "/b")
		require.NoError(t, err)
		assert.Equal(t, map[string]string{"/a": "1", "/b": "2"}, got)
		assert.Equal(t, []string{"/a", "/b"}, client.in.Names)
		assert.True(t, aws.ToBool(client.in.WithDecryption))
	})

	t.Run("missing", func(t *testing.T) {
		client := &fakeParametersClient{out: &ssm.GetParametersOutput{
			Parameters: []types.Parameter{{Name: aws.String("/a"), Value: aws.String("1")}},
		}}

		_, err := fetchParams(context.Background(), client, "/a", "/b")
		require.ErrorContains(t, err, "missing parameter values: [/b]")
	})

	t.Run("request failure", func(t *testing.T) {
		client := &fakeParametersClient{err: errors.New("throttled")}

		_, err := fetchParams(context.Background(), client, "/a")
		require.ErrorContains(t, err, "throttled")
	})
}
