package usecase

import (
	"math/rand/v2"
	"time"

	"wish-landing/internal/domain"
)

const (
	DefaultCookieName   = "natasha_wish"
	DefaultCookieTTL    = 30 * 24 * time.Hour
	DefaultRefreshParam = "bless"
	DefaultRefreshValue = "new"
)

// PickInput carries everything the picker decides on. The cookie jar and the
// page URL are passed in explicitly so Pick stays a pure function.
type PickInput struct {
	Catalog      []string
	Persisted    string
	HasPersisted bool
	Refresh      bool
	Now          time.Time
	Random       func() float64
	CookieName   string
	TTL          time.Duration
}

// PickOutput is the wish to display and, when a new wish was drawn, the
// cookie write that persists it. Wish is empty when there is nothing to show.
type PickOutput struct {
	Wish  string
	Write *domain.CookieWrite
}

// Pick reuses a persisted wish unless a refresh is requested, otherwise it
// draws uniformly from the catalog and asks for the draw to be persisted.
// An empty catalog shows nothing, whatever the cookie holds.
func Pick(in PickInput) PickOutput {
	if len(in.Catalog) == 0 {
		return PickOutput{}
	}
	if in.HasPersisted && in.Persisted != "" && !in.Refresh {
		return PickOutput{Wish: in.Persisted}
	}

	random := in.Random
	if random == nil {
		random = rand.Float64
	}
	wish := in.Catalog[drawIndex(random(), len(in.Catalog))]

	name := in.CookieName
	if name == "" {
		name = DefaultCookieName
	}
	ttl := in.TTL
	if ttl <= 0 {
		ttl = DefaultCookieTTL
	}
	return PickOutput{
		Wish: wish,
		Write: &domain.CookieWrite{
			Name:  name,
			Value: wish,
			TTL:   ttl,
			At:    in.Now,
		},
	}
}

// drawIndex maps r in [0,1) onto [0,n). Values at or past the bounds are
// clamped so float rounding can never index out of range.
func drawIndex(r float64, n int) int {
	i := int(r * float64(n))
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

// RefreshRequested reports whether the query string asks for a fresh draw.
func RefreshRequested(query map[string]string, param, sentinel string) bool {
	if len(query) == 0 || param == "" {
		return false
	}
	v, ok := query[param]
	if !ok {
		return false
	}
	return v == sentinel
}
