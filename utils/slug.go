package utils

import (
	"crypto/rand"
	"encoding/hex"

	"github.com/gosimple/slug"
)

// SlugExistsFunc answers whether a candidate slug is already taken.
type SlugExistsFunc func(candidate string) bool

// UniqueSlug slugifies title and, when the result is already taken, appends a
// short random hex suffix instead of probing counters.
func UniqueSlug(title string, exists SlugExistsFunc) string {
	s := slug.Make(title)
	if s == "" {
		s = randomHex(4)
	}
	if exists != nil && exists(s) {
		s = s + "-" + randomHex(4)
	}
	return s
}

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "0000"
	}
	return hex.EncodeToString(b)
}
