package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemeURLs(t *testing.T) {
	assert.Equal(t,
		[]string{"https://m/meme/a", "https://m/meme/b"},
		MemeURLs([]any{"https://m/meme/a", float64(3), "", "https://m/meme/b"}),
	)
	assert.Empty(t, MemeURLs([]any{}))
	assert.Nil(t, MemeURLs(map[string]any{"url": "x.png"}))
	assert.Nil(t, MemeURLs(nil))
}

func TestHashFromURL(t *testing.T) {
	tests := []struct {
		in   string
		hash string
		ok   bool
	}{
		{"https://meme.example.com/meme/0a1b2c3d4e5f6a7b", "0a1b2c3d4e5f6a7b", true},
		{"https://meme.example.com/meme/0A1B2C3D4E5F6A7B", "0a1b2c3d4e5f6a7b", true},
		{"https://meme.example.com/prefix/meme/0a1b2c3d4e5f6a7b/", "0a1b2c3d4e5f6a7b", true},
		{"https://meme.example.com/meme/short", "", false},
		{"https://meme.example.com/meme/zz1b2c3d4e5f6a7b", "", false},
		{"https://meme.example.com/img/0a1b2c3d4e5f6a7b", "", false},
		{"x.png", "", false},
		{"://bad", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			hash, ok := HashFromURL(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.hash, hash)
		})
	}
}

func TestNewFetchResult(t *testing.T) {
	res := NewFetchResult([]any{
		"https://m/meme/0a1b2c3d4e5f6a7b",
		"https://m/other.png",
	}, "memes-client", "1.0")

	assert.Equal(t, 2, res.Count)
	assert.Equal(t, "0a1b2c3d4e5f6a7b", res.Memes[0].Hash)
	assert.Empty(t, res.Memes[1].Hash)
	assert.Nil(t, res.Raw)
	assert.Equal(t, "memes-client", res.Source)
	assert.False(t, res.FetchedAt.IsZero())

	obj := map[string]any{"id": float64(1), "url": "x.png"}
	res = NewFetchResult(obj, "memes-client", "1.0")
	assert.Zero(t, res.Count)
	assert.Empty(t, res.Memes)
	assert.Equal(t, obj, res.Raw)
}
