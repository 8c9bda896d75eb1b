package twitter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCreds = Credentials{
	ConsumerKey:    "consumer-key",
	ConsumerSecret: "consumer-secret",
	AccessToken:    "access-token",
	AccessSecret:   "access-secret",
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Publish(t *testing.T) {
	var gotBody CreateTweetRequest
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/2/tweets", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"data":{"id":"1790000000000000000","text":"hei"}}`)
	}))
	defer srv.Close()

	id, err := NewClient(testCreds, srv.URL, discardLogger()).Publish(context.Background(), "hei")
	require.NoError(t, err)
	assert.Equal(t, "1790000000000000000", id)
	assert.Equal(t, "hei", gotBody.Text)
	assert.Contains(t, gotAuth, "OAuth ")
	assert.Contains(t, gotAuth, `oauth_consumer_key="consumer-key"`)
	assert.Contains(t, gotAuth, `oauth_token="access-token"`)
	assert.Contains(t, gotAuth, "oauth_signature=")
}

func TestClient_Publish_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{
			name:    "unauthorized",
			status:  http.StatusUnauthorized,
			body:    `{"title":"Unauthorized","status":401}`,
			wantErr: "unexpected status code: 401",
		},
		{
			name:    "duplicate content",
			status:  http.StatusForbidden,
			body:    `{"detail":"You are not allowed to create a Tweet with duplicate content."}`,
			wantErr: "unexpected status code: 403",
		},
		{
			name:    "created without id",
			status:  http.StatusCreated,
			body:    `{"data":{}}`,
			wantErr: errNoTweetID.Error(),
		},
		{
			name:    "garbage",
			status:  http.StatusCreated,
			body:    `not json`,
			wantErr: "unmarshal create tweet response",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			_, err := NewClient(testCreds, srv.URL, discardLogger()).Publish(context.Background(), "hei")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
