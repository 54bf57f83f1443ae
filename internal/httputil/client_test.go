package httputil

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordSleeps(waits *[]time.Duration) func(context.Context, time.Duration) error {
	return func(_ context.Context, d time.Duration) error {
		*waits = append(*waits, d)
		return nil
	}
}

func TestRetryLinearBackoff(t *testing.T) {
	var waits []time.Duration
	calls := 0
	err := Retry(context.Background(), RetryPolicy{
		Attempts: 3,
		Backoff:  time.Second,
		Sleep:    recordSleeps(&waits),
	}, func(int) error {
		calls++
		return errors.New("boom")
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed after 3 attempts")
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, waits)
}

func TestRetryStopsOnSuccess(t *testing.T) {
	var waits []time.Duration
	calls := 0
	err := Retry(context.Background(), RetryPolicy{Attempts: 5, Backoff: time.Millisecond, Sleep: recordSleeps(&waits)},
		func(attempt int) error {
			calls++
			if attempt < 1 {
				return errors.New("transient")
			}
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Len(t, waits, 1)
}

func TestRetryPermanent(t *testing.T) {
	sentinel := errors.New("quota")
	calls := 0
	err := Retry(context.Background(), RetryPolicy{Attempts: 4, Backoff: time.Millisecond}, func(int) error {
		calls++
		return Permanent(sentinel)
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, sentinel)
}

func TestRetryHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Retry(ctx, RetryPolicy{Attempts: 3, Backoff: time.Hour}, func(int) error {
		return errors.New("transient")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadBodyDecodesEncodings(t *testing.T) {
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, _ = zw.Write([]byte(`{"ok":true}`))
	require.NoError(t, zw.Close())

	var br bytes.Buffer
	bw := brotli.NewWriter(&br)
	_, _ = bw.Write([]byte(`{"ok":true}`))
	require.NoError(t, bw.Close())

	tests := []struct {
		name     string
		encoding string
		body     []byte
	}{
		{"identity", "", []byte(`{"ok":true}`)},
		{"gzip", "gzip", gz.Bytes()},
		{"brotli", "br", br.Bytes()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{
				Header: http.Header{},
				Body:   io.NopCloser(bytes.NewReader(tt.body)),
			}
			if tt.encoding != "" {
				resp.Header.Set("Content-Encoding", tt.encoding)
			}
			got, err := ReadBody(resp)
			require.NoError(t, err)
			assert.JSONEq(t, `{"ok":true}`, string(got))
		})
	}
}

func TestApplyKeepsExistingHeaders(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "http://example.com", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/plain")

	Apply(req, JSONHeaders())

	assert.Equal(t, "text/plain", req.Header.Get("Accept"))
	assert.Equal(t, UserAgent, req.Header.Get("User-Agent"))
}
