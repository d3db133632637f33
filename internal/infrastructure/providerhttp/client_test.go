package providerhttp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayanth2212/AgriSure/internal/domain/port"
)

func TestGetJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
			assert.Equal(t, "30.9", r.URL.Query().Get("lat"))
			_, _ = w.Write([]byte(`{"value": 0.42}`))
		case "/bad":
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		case "/garbage":
			_, _ = w.Write([]byte(`not json`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL+"/", time.Second, map[string]string{"X-API-Key": "secret"})
	ctx := context.Background()

	var out struct {
		Value float64 `json:"value"`
	}
	require.NoError(t, c.GetJSON(ctx, "/ok", url.Values{"lat": {"30.9"}}, &out))
	assert.Equal(t, 0.42, out.Value)

	err := c.GetJSON(ctx, "/missing", nil, &out)
	assert.ErrorIs(t, err, port.ErrProviderUnavailable)

	err = c.GetJSON(ctx, "/bad", nil, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "quota exceeded")
	assert.NotErrorIs(t, err, port.ErrProviderUnavailable)

	err = c.GetJSON(ctx, "/garbage", nil, &out)
	assert.ErrorContains(t, err, "failed to decode")
}

func TestGetJSON_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	var out map[string]any
	err := New(srv.URL, time.Second, nil).GetJSON(ctx, "/slow", nil, &out)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
