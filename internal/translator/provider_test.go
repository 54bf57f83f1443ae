package translator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func myMemoryServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *MyMemory {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(srv.Close)
	return NewMyMemory(srv.Client(), srv.URL+"/get", time.Second)
}

func writeMyMemory(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"responseStatus": status,
		"responseData":   map[string]any{"translatedText": text},
	})
}

func TestMyMemoryTranslate(t *testing.T) {
	p := myMemoryServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/get", r.URL.Path)
		assert.Equal(t, "儿童服装", r.URL.Query().Get("q"))
		assert.Equal(t, "zh|en", r.URL.Query().Get("langpair"))
		writeMyMemory(w, 200, "Children's clothing")
	})

	out, err := p.Translate(context.Background(), "儿童服装", "zh", "en")
	require.NoError(t, err)
	assert.Equal(t, "Children's clothing", out)
	assert.Equal(t, "mymemory", p.Name())
}

func TestMyMemoryRejectsNonTranslations(t *testing.T) {
	tests := []struct {
		name    string
		handler func(w http.ResponseWriter, r *http.Request)
		want    error
	}{
		{
			name:    "quota notice",
			handler: func(w http.ResponseWriter, r *http.Request) { writeMyMemory(w, 200, myMemoryQuotaNotice) },
			want:    ErrQuotaExceeded,
		},
		{
			name:    "empty text",
			handler: func(w http.ResponseWriter, r *http.Request) { writeMyMemory(w, 200, "") },
			want:    ErrEmptyTranslation,
		},
		{
			name:    "bad response status",
			handler: func(w http.ResponseWriter, r *http.Request) { writeMyMemory(w, 403, "INVALID LANGUAGE PAIR") },
		},
		{
			name:    "http error",
			handler: func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusBadGateway) },
		},
		{
			name:    "not json",
			handler: func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("<html>")) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := myMemoryServer(t, tt.handler)
			_, err := p.Translate(context.Background(), "你好", "zh", "en")
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

type stubProvider struct {
	name  string
	calls int
	out   string
	err   error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Translate(_ context.Context, text, _, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.out, nil
}

func TestGoogleWithoutKeyUsesFallback(t *testing.T) {
	fallback := &stubProvider{name: "mymemory", out: "Hello"}
	g := NewGoogle(http.DefaultClient, "http://127.0.0.1:1", "", fallback, nil)

	out, err := g.Translate(context.Background(), "你好", "zh", "en")
	require.NoError(t, err)
	assert.Equal(t, "Hello", out)
	assert.Equal(t, 1, fallback.calls)
}

func TestGoogleTranslate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "zh", body["source"])
		assert.Equal(t, "ja", body["target"])
		assert.Equal(t, "text", body["format"])
		w.Write([]byte(`{"data":{"translations":[{"translatedText":"こんにちは"}]}}`))
	}))
	defer srv.Close()

	fallback := &stubProvider{name: "mymemory", out: "unused"}
	g := NewGoogle(srv.Client(), srv.URL, "secret", fallback, nil)

	out, err := g.Translate(context.Background(), "你好", "zh", "ja")
	require.NoError(t, err)
	assert.Equal(t, "こんにちは", out)
	assert.Zero(t, fallback.calls)
}

func TestGoogleErrorUsesFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	fallback := &stubProvider{name: "mymemory", out: "Hello"}
	g := NewGoogle(srv.Client(), srv.URL, "bad", fallback, nil)

	out, err := g.Translate(context.Background(), "你好", "zh", "en")
	require.NoError(t, err)
	assert.Equal(t, "Hello", out)
	assert.Equal(t, 1, fallback.calls)
}

func TestBaiduDelegates(t *testing.T) {
	fallback := &stubProvider{name: "mymemory", err: errors.New("down")}
	b := NewBaidu(fallback)

	_, err := b.Translate(context.Background(), "你好", "zh", "en")
	assert.EqualError(t, err, "down")
	assert.Equal(t, "baidu", b.Name())
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	mm := &stubProvider{name: "mymemory"}
	r.Register(mm)
	r.Register(NewBaidu(mm))

	assert.Equal(t, []string{"baidu", "mymemory"}, r.List())

	p, err := r.Get("mymemory")
	require.NoError(t, err)
	assert.Same(t, mm, p)

	_, err = r.Get("deepl")
	assert.ErrorIs(t, err, ErrProviderNotRegistered)
}

func TestLanguages(t *testing.T) {
	assert.Len(t, Languages, 14)
	assert.True(t, IsSupported("vi"))
	assert.False(t, IsSupported("xx"))
	name, ok := LanguageName("ja")
	assert.True(t, ok)
	assert.Equal(t, "日本語", name)
	assert.Equal(t, "zh", Codes()[0])
}
