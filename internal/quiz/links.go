package quiz

import (
	"net/url"
	"strings"
)

const (
	wikipediaURLPrefix = "https://en.wikipedia.org/wiki/"
	mapsURLPrefix      = "https://www.google.com/maps/search/?api=1&query="
)

// Links are the external reference pages for a place name.
type Links struct {
	Wikipedia string `json:"wikipedia"`
	Maps      string `json:"maps"`
}

// ExternalLinks builds the encyclopedia and map search URLs for placename.
func ExternalLinks(placename string) Links {
	enc := encodeComponent(placename)
	return Links{
		Wikipedia: wikipediaURLPrefix + enc,
		Maps:      mapsURLPrefix + enc,
	}
}

// encodeComponent percent-encodes s as a single URL component. Spaces
// become %20 rather than '+'; a literal '+' has already been escaped to %2B.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
