package paramstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"wish-landing/internal/domain"
)

// ssmAPI is the minimal AWS SSM interface required by Client.
// *ssm.Client from aws-sdk-go-v2 satisfies this interface.
type ssmAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Client loads the landing page settings document from a single SSM
// parameter. The document is JSON; fields it omits keep their defaults.
type Client struct {
	api  ssmAPI
	name string
}

// New creates a Client reading the parameter called name.
func New(api ssmAPI, name string) (*Client, error) {
	if api == nil {
		return nil, errors.New("paramstore: api must not be nil")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("paramstore: parameter name must not be empty")
	}
	return &Client{api: api, name: name}, nil
}

// LoadSettings fetches and validates the settings document.
func (c *Client) LoadSettings(ctx context.Context) (domain.SiteSettings, error) {
	if c.api == nil {
		return domain.SiteSettings{}, errors.New("paramstore: client not initialized")
	}
	withDecryption := true
	out, err := c.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           &c.name,
		WithDecryption: &withDecryption,
	})
	if err != nil {
		return domain.SiteSettings{}, fmt.Errorf("paramstore: get parameter %q: %w", c.name, err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return domain.SiteSettings{}, errors.New("paramstore: parameter missing value")
	}
	return ParseSettings([]byte(*out.Parameter.Value))
}

// ParseSettings overlays a JSON settings document on the defaults.
func ParseSettings(data []byte) (domain.SiteSettings, error) {
	var doc domain.SiteSettings
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.SiteSettings{}, fmt.Errorf("paramstore: decode settings: %w", err)
	}

	site := domain.DefaultSiteSettings()
	overlay(&site.BrandName, doc.BrandName)
	overlay(&site.Tagline, doc.Tagline)
	overlay(&site.Closing, doc.Closing)
	overlay(&site.CTALabel, doc.CTALabel)
	overlay(&site.CTAURL, doc.CTAURL)

	if err := validateLink(site.CTAURL); err != nil {
		return domain.SiteSettings{}, err
	}
	return site, nil
}

func overlay(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func validateLink(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("paramstore: parse ctaUrl: %w", err)
	}
	if (u.Scheme != "https" && u.Scheme != "http") || u.Host == "" {
		return fmt.Errorf("paramstore: ctaUrl %q must be an absolute http(s) URL", raw)
	}
	return nil
}

// Static serves fixed settings without any AWS call. It is used when no
// parameter is configured.
type Static struct {
	Site domain.SiteSettings
}

func (s Static) LoadSettings(context.Context) (domain.SiteSettings, error) {
	return s.Site, nil
}
