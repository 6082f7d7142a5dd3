package models

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Slugify turns a title into a url slug: lowercase, ascii letters and
// digits kept, everything else collapsed to single dashes.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) && r < 128, unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// GenerateArticle produces a random numeric article number for products
// created without one.
func GenerateArticle() string {
	const digits = "0123456789"
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return strconv.FormatInt(time.Now().UnixNano()%100000000, 10)
	}
	for i := range b {
		b[i] = digits[int(b[i])%len(digits)]
	}
	return string(b)
}
