package model

import (
	"encoding/hex"
	"net/url"
	"strings"
	"time"
)

// HashLength is the length of the hex meme hash: the trailing 8 bytes of the
// SHA-256 digest of the uploaded file.
const HashLength = 16

type Meme struct {
	URL  string `json:"url"`
	Hash string `json:"hash,omitempty"`
}

// FetchResult is the message published for every successful fetch.
type FetchResult struct {
	Memes     []Meme    `json:"memes"`
	Count     int       `json:"count"`
	Raw       any       `json:"raw,omitempty"`
	FetchedAt time.Time `json:"fetchedAt"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// MemeURLs returns the string elements of a decoded JSON array. Any other
// shape yields nil.
func MemeURLs(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}

	urls := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			urls = append(urls, s)
		}
	}
	return urls
}

// HashFromURL extracts the hash from a <base>/meme/<hash> URL.
func HashFromURL(u string) (string, bool) {
	parsed, err := url.Parse(u)
	if err != nil {
		return "", false
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(segments) < 2 || segments[len(segments)-2] != "meme" {
		return "", false
	}

	hash := segments[len(segments)-1]
	if len(hash) != HashLength {
		return "", false
	}
	if _, err := hex.DecodeString(hash); err != nil {
		return "", false
	}
	return strings.ToLower(hash), true
}

// NewFetchResult builds the published message for a decoded payload. When the
// payload is not a list of meme URLs it is carried as-is in Raw.
func NewFetchResult(data any, source, version string) FetchResult {
	urls := MemeURLs(data)

	result := FetchResult{
		Memes:     make([]Meme, 0, len(urls)),
		FetchedAt: time.Now(),
		Source:    source,
		Version:   version,
	}
	for _, u := range urls {
		hash, _ := HashFromURL(u)
		result.Memes = append(result.Memes, Meme{URL: u, Hash: hash})
	}
	result.Count = len(result.Memes)

	if _, isList := data.([]any); !isList {
		result.Raw = data
	}
	return result
}
