package scraper

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_FetchText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><style>body{}</style></head><body>
			<h1>Data Scientist</h1>
			<script>var tracking = "ignore me";</script>
			<p>We use  Python,
			SQL and Machine Learning.</p>
		</body></html>`))
	}))
	defer srv.Close()

	text, err := NewFetcher(WithPrivateNetworks()).FetchText(context.Background(), srv.URL+"/jobs/1")
	require.NoError(t, err)
	assert.Equal(t, "Data Scientist We use Python, SQL and Machine Learning.", text)
}

func TestFetcher_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	_, err := NewFetcher(WithPrivateNetworks()).FetchText(context.Background(), srv.URL)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrBlockedHost)
}

func TestFetcher_BlocksNonPublicHosts(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(`<html><body>internal admin</body></html>`))
	}))
	defer srv.Close()

	f := NewFetcher()
	for _, raw := range []string{
		srv.URL + "/admin",
		"http://localhost/",
		"http://10.0.0.7/",
		"http://192.168.1.1/",
		"http://169.254.169.254/latest/meta-data/",
		"http://[::1]/",
	} {
		_, err := f.FetchText(context.Background(), raw)
		assert.ErrorIs(t, err, ErrBlockedHost, "url %q", raw)
		assert.ErrorIs(t, err, ErrInvalidURL, "url %q", raw)
	}
	assert.Zero(t, hits)
}

func TestFetcher_PublicIP(t *testing.T) {
	assert.True(t, publicIP(net.ParseIP("93.184.216.34")))
	assert.True(t, publicIP(net.ParseIP("2606:4700::1111")))
	assert.False(t, publicIP(net.ParseIP("127.0.0.1")))
	assert.False(t, publicIP(net.ParseIP("172.16.3.4")))
	assert.False(t, publicIP(net.ParseIP("fe80::1")))
	assert.False(t, publicIP(net.ParseIP("0.0.0.0")))
}

func TestFetcher_HonoursContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewFetcher(WithPrivateNetworks(), WithTimeout(10*time.Second)).FetchText(ctx, srv.URL)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestFetcher_InvalidURL(t *testing.T) {
	f := NewFetcher()
	for _, raw := range []string{"", "ftp://example.com/x", "not a url", "https://"} {
		_, err := f.FetchText(context.Background(), raw)
		assert.ErrorIs(t, err, ErrInvalidURL, "url %q", raw)
	}
}
