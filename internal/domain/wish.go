package domain

import "time"

// CookieWrite is an instruction to persist the displayed wish in the visitor's
// cookie jar. The handler turns it into a Set-Cookie header.
type CookieWrite struct {
	Name  string
	Value string
	TTL   time.Duration
	At    time.Time
}

// Expires returns the absolute expiry of the cookie.
func (w CookieWrite) Expires() time.Time {
	return w.At.Add(w.TTL)
}
