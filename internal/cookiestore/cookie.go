// Package cookiestore reads and writes the single wish cookie carried by the
// visitor's browser. Values are URL-encoded the same way browsers encode
// URI components so cookies written by client-side scripts decode unchanged.
package cookiestore

import (
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"wish-landing/internal/domain"
)

// Read returns the decoded value of the cookie called name from a raw Cookie
// request header. Missing, empty or undecodable values are reported as absent.
func Read(header, name string) (string, bool) {
	header = strings.TrimSpace(header)
	name = strings.TrimSpace(name)
	if header == "" || name == "" {
		return "", false
	}
	req := &http.Request{Header: http.Header{"Cookie": {header}}}
	cookie, err := req.Cookie(name)
	if err != nil || cookie == nil {
		return "", false
	}
	value, ok := Decode(cookie.Value)
	if !ok || value == "" {
		return "", false
	}
	return value, true
}

// Write renders the Set-Cookie header value for w. The cookie is scoped to the
// whole site and marked SameSite=Lax.
func Write(w domain.CookieWrite, secure bool) string {
	if w.TTL < 0 {
		w.TTL = 0
	}
	cookie := &http.Cookie{
		Name:     strings.TrimSpace(w.Name),
		Value:    Encode(w.Value),
		Path:     "/",
		Expires:  w.Expires().UTC(),
		MaxAge:   int(w.TTL / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	if cookie.MaxAge == 0 {
		cookie.MaxAge = -1
	}
	return cookie.String()
}

// uriComponentUnescaper undoes the escapes QueryEscape adds beyond what
// encodeURIComponent produces.
var uriComponentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// Encode escapes value for storage in a cookie, byte for byte as
// encodeURIComponent does.
func Encode(value string) string {
	return uriComponentUnescaper.Replace(url.QueryEscape(value))
}

// Decode reverses Encode. It rejects malformed escapes and invalid UTF-8.
func Decode(raw string) (string, bool) {
	value, err := url.PathUnescape(raw)
	if err != nil {
		return "", false
	}
	if !utf8.ValidString(value) {
		return "", false
	}
	return value, true
}
