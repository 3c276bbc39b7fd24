package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPost(t *testing.T) {
	var got url.Values

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "vquest-test", r.Header.Get("User-Agent"))
		require.NoError(t, r.ParseForm())
		got = r.PostForm

		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write([]byte("PK\x03\x04"))
	}))
	defer srv.Close()

	tr, err := New(Config{UserAgent: "vquest-test"})
	require.NoError(t, err)

	form := url.Values{}
	form.Set("species", "rhesus-monkey")
	form.Set("sequences", ">seq1\nACGT\n")

	resp, err := tr.Post(context.Background(), srv.URL, form)
	require.NoError(t, err)

	assert.True(t, resp.OK())
	assert.Equal(t, "application/zip", resp.ContentType)
	assert.Equal(t, []byte("PK\x03\x04"), resp.Body)
	assert.Equal(t, "rhesus-monkey", got.Get("species"))
	assert.Equal(t, ">seq1\nACGT\n", got.Get("sequences"))
}

func TestPostErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	tr, err := New(Config{})
	require.NoError(t, err)

	resp, err := tr.Post(context.Background(), srv.URL, url.Values{})
	require.NoError(t, err)

	assert.False(t, resp.OK())
	err = resp.StatusError()
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream down")
}

func TestPostCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	tr, err := New(Config{Timeout: 10 * time.Second})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = tr.Post(ctx, srv.URL, url.Values{})
	assert.Error(t, err)
}

func TestNewInvalidProxy(t *testing.T) {
	_, err := New(Config{ProxyURL: "://bad"})
	assert.Error(t, err)
}
