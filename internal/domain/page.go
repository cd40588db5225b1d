package domain

// SiteSettings holds the presentation text and call-to-action target of the
// landing page.
type SiteSettings struct {
	BrandName string `json:"brandName"`
	Tagline   string `json:"tagline"`
	Closing   string `json:"closing"`
	CTAURL    string `json:"ctaUrl"`
	CTALabel  string `json:"ctaLabel"`
}

// DefaultSiteSettings returns the settings the page ships with.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		BrandName: "Natasha Mind Body Soul",
		Tagline:   "דברים מדויקים לא קורים במקרה",
		Closing:   "את/ה במרחק קליק אחד מלייצר מציאות טובה יותר",
		CTAURL:    "https://www.natashafriends.com/",
		CTALabel:  "לגלות את הריטריט של נטשה",
	}
}

// Page is everything the view needs to render one landing page load.
// An empty Wish means no wish is shown.
type Page struct {
	Settings SiteSettings
	Wish     string
}

// HasWish reports whether the wish slot should be rendered.
func (p Page) HasWish() bool {
	return p.Wish != ""
}
