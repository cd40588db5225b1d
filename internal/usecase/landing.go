package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"wish-landing/internal/cookiestore"
	"wish-landing/internal/domain"
)

// SettingsLoader resolves the site settings. Implementations may call out to
// a remote parameter store.
type SettingsLoader interface {
	LoadSettings(ctx context.Context) (domain.SiteSettings, error)
}

// Renderer turns a page model into HTML and serves the static assets the page
// links to.
type Renderer interface {
	RenderPage(w io.Writer, page domain.Page) error
	Asset(name string) (body []byte, contentType string, ok bool)
}

// Config tunes the wish cookie and the refresh flag. Zero values fall back to
// the Default* constants.
type Config struct {
	CookieName   string
	CookieTTL    time.Duration
	CookieSecure bool
	RefreshParam string
	RefreshValue string
}

type LandingInput struct {
	CookieHeader string
	Query        map[string]string
}

// LandingOutput is one rendered page load. SetCookie is empty when the
// persisted wish was reused or there was nothing to persist.
type LandingOutput struct {
	HTML      string
	Wish      string
	SetCookie string
}

// AssetOutput is a static file referenced by the page.
type AssetOutput struct {
	Body        []byte
	ContentType string
}

type LandingService struct {
	settings SettingsLoader
	renderer Renderer
	catalog  []string
	cfg      Config
	now      func() time.Time
	random   func() float64

	cacheMu     sync.RWMutex
	cacheLoaded bool
	site        domain.SiteSettings
}

func NewLandingService(settings SettingsLoader, renderer Renderer, catalog []string, cfg Config) (*LandingService, error) {
	if settings == nil {
		return nil, errors.New("usecase: settings loader must not be nil")
	}
	if renderer == nil {
		return nil, errors.New("usecase: renderer must not be nil")
	}
	cfg.CookieName = strings.TrimSpace(cfg.CookieName)
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultCookieName
	}
	if cfg.CookieTTL <= 0 {
		cfg.CookieTTL = DefaultCookieTTL
	}
	cfg.RefreshParam = strings.TrimSpace(cfg.RefreshParam)
	if cfg.RefreshParam == "" {
		cfg.RefreshParam = DefaultRefreshParam
	}
	cfg.RefreshValue = strings.TrimSpace(cfg.RefreshValue)
	if cfg.RefreshValue == "" {
		cfg.RefreshValue = DefaultRefreshValue
	}
	wishes := make([]string, len(catalog))
	copy(wishes, catalog)
	return &LandingService{
		settings: settings,
		renderer: renderer,
		catalog:  wishes,
		cfg:      cfg,
		now:      time.Now,
		random:   rand.Float64,
	}, nil
}

// Render decides which wish this page load shows and renders the page.
func (s *LandingService) Render(ctx context.Context, in LandingInput) (LandingOutput, error) {
	persisted, hasPersisted := cookiestore.Read(in.CookieHeader, s.cfg.CookieName)
	picked := Pick(PickInput{
		Catalog:      s.catalog,
		Persisted:    persisted,
		HasPersisted: hasPersisted,
		Refresh:      RefreshRequested(in.Query, s.cfg.RefreshParam, s.cfg.RefreshValue),
		Now:          s.now(),
		Random:       s.random,
		CookieName:   s.cfg.CookieName,
		TTL:          s.cfg.CookieTTL,
	})

	var buf bytes.Buffer
	page := domain.Page{Settings: s.siteSettings(ctx), Wish: picked.Wish}
	if err := s.renderer.RenderPage(&buf, page); err != nil {
		return LandingOutput{}, newError(ErrorInternal, "render_error", err)
	}

	out := LandingOutput{HTML: buf.String(), Wish: picked.Wish}
	if picked.Write != nil {
		out.SetCookie = cookiestore.Write(*picked.Write, s.cfg.CookieSecure)
	}
	return out, nil
}

// Asset returns a static file linked from the page.
func (s *LandingService) Asset(_ context.Context, name string) (AssetOutput, error) {
	body, contentType, ok := s.renderer.Asset(strings.TrimPrefix(name, "/"))
	if !ok {
		return AssetOutput{}, newError(ErrorNotFound, "asset_not_found", nil)
	}
	return AssetOutput{Body: body, ContentType: contentType}, nil
}

// siteSettings returns the cached settings, loading them on first use. A
// failed load is not cached: the page renders with defaults and the next
// request tries again.
func (s *LandingService) siteSettings(ctx context.Context) domain.SiteSettings {
	s.cacheMu.RLock()
	if s.cacheLoaded {
		site := s.site
		s.cacheMu.RUnlock()
		return site
	}
	s.cacheMu.RUnlock()

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.cacheLoaded {
		return s.site
	}

	site, err := s.settings.LoadSettings(ctx)
	if err != nil {
		slog.WarnContext(ctx, "site settings unavailable, using defaults", "err", err)
		return domain.DefaultSiteSettings()
	}
	s.site = site
	s.cacheLoaded = true
	return site
}
