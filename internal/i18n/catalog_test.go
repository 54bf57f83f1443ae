package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultBundleTables(t *testing.T) {
	b := Default()

	assert.Equal(t, []string{"en", "zh"}, b.Locales())
	assert.Equal(t, "首页", b.T("zh", "nav.home"))
	assert.Equal(t, "Home", b.T("en", "nav.home"))
	assert.Equal(t, "Service Hotline: ", b.T("en", "contact.service_hotline"))
	assert.Equal(t, "Price: Low to High", b.T("en", "sort.price_asc"))
	assert.Equal(t, b.Keys("zh"), b.Keys("en"), "locales define the same keys")
}

func TestMissingKeyFallsBackToKey(t *testing.T) {
	b := Default()

	assert.Equal(t, "nav.missing", b.T("zh", "nav.missing"))
	assert.Equal(t, "nav.home", b.T("fr", "nav.home"))

	_, ok := b.Lookup("en", "nav.missing")
	assert.False(t, ok)
}

func TestLocalizer(t *testing.T) {
	l := Default().For("en")
	assert.Equal(t, "en", l.Language())
	assert.Equal(t, "Search", l.T("btn.search"))
	assert.Equal(t, "unknown.key", l.T("unknown.key"))
}

func TestLoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/zh.yaml": {Data: []byte("greeting: 你好\n")},
		"locales/ja.yaml": {Data: []byte("greeting: こんにちは\n")},
	}
	b, err := LoadFromFS(fsys)
	require.NoError(t, err)
	assert.Equal(t, "こんにちは", b.T("ja", "greeting"))
}

func TestLoadFromFSErrors(t *testing.T) {
	_, err := LoadFromFS(fstest.MapFS{})
	assert.Error(t, err, "no files")

	_, err = LoadFromFS(fstest.MapFS{"locales/en.yaml": {Data: []byte("a: b\n")}})
	assert.Error(t, err, "source language missing")

	_, err = LoadFromFS(fstest.MapFS{"locales/zh.yaml": {Data: []byte("a: [unclosed\n")}})
	assert.Error(t, err, "malformed yaml")
}

func TestMatcher(t *testing.T) {
	m := NewMatcher("zh", "en", "ja")

	assert.Equal(t, "en", m.Match("en-US"))
	assert.Equal(t, "zh", m.Match("zh-CN"))
	assert.Equal(t, "ja", m.Match("ja-JP,en;q=0.5"))
	assert.Equal(t, "zh", m.Match("xx-invalid-!!"))
	assert.Equal(t, "zh", m.Match())
	assert.True(t, m.Supports("ja"))
	assert.False(t, m.Supports("ko"))
}

func TestBase(t *testing.T) {
	code, err := Base("zh-Hans-CN")
	require.NoError(t, err)
	assert.Equal(t, "zh", code)

	_, err = Base("!!")
	assert.Error(t, err)
}
