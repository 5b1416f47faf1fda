package ocs_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ierr "github.com/teltrip/ocsreport/internal/errors"
	"github.com/teltrip/ocsreport/internal/httpclient"
	"github.com/teltrip/ocsreport/internal/logger"
	"github.com/teltrip/ocsreport/internal/ocs"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) ocs.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return ocs.NewClient(
		httpclient.NewDefaultClient(httpclient.ClientConfig{Timeout: timeout}),
		ocs.ClientConfig{
			BaseURL:        srv.URL,
			Token:          "secret",
			RequestTimeout: timeout,
		},
		logger.NewNop(),
	)
}

func TestClientSendsOperationEnvelopeAndToken(t *testing.T) {
	var gotBody []byte
	var gotToken string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.URL.Query().Get("token")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"listSubscriber":{"subscriberList":[{"subscriberId":1}]}}`))
	}, 5*time.Second)

	resp, err := client.Call(context.Background(), "listSubscriber", map[string]any{"accountId": 3771})
	require.NoError(t, err)
	require.False(t, resp.Empty)
	require.Equal(t, "secret", gotToken)
	require.JSONEq(t, `{"listSubscriber":{"accountId":3771}}`, string(gotBody))
	require.Contains(t, resp.Data, "listSubscriber")
}

func TestClientNon2xxIsError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "token rejected", http.StatusForbidden)
	}, 5*time.Second)

	_, err := client.Call(context.Background(), "listSubscriber", map[string]any{})
	require.Error(t, err)
	require.True(t, ierr.IsUpstreamHTTP(err))
}

func TestClientEmptyBodyIsMarkerNotError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, 5*time.Second)

	resp, err := client.Call(context.Background(), "subscriberUsageOverPeriod", map[string]any{})
	require.NoError(t, err)
	require.True(t, resp.Empty)
	require.Nil(t, resp.Data)
}

func TestClientNonJSONBodyIsMarkerNotError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("maintenance page"))
	}, 5*time.Second)

	resp, err := client.Call(context.Background(), "subscriberUsageOverPeriod", map[string]any{})
	require.NoError(t, err)
	require.True(t, resp.Empty)
	require.Equal(t, "maintenance page", resp.Raw)
}

func TestClientTimeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write([]byte(`{}`))
	}, 50*time.Millisecond)

	_, err := client.Call(context.Background(), "listSubscriber", map[string]any{})
	require.Error(t, err)
	require.True(t, ierr.IsUpstreamTimeout(err))
}
