package sites

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Registry holds all tenant sites. Like the catalog it is populated once at
// startup and only read afterwards.
type Registry struct {
	sites         []*Site
	defaultSiteID string
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Add(s *Site) {
	r.sites = append(r.sites, s)
}

func (r *Registry) SetDefault(siteID string) {
	r.defaultSiteID = siteID
}

// Get returns the site with the given id. Inactive sites are invisible here;
// a disabled tenant should behave exactly like an unknown one.
func (r *Registry) Get(siteID string) (*Site, bool) {
	for _, s := range r.sites {
		if s.ID == siteID && s.Active {
			return s, true
		}
	}
	return nil, false
}

// DefaultSite returns the configured default, falling back to the first
// registered site. Returns false only for an empty registry.
func (r *Registry) DefaultSite() (*Site, bool) {
	if r.defaultSiteID != "" {
		if s, ok := r.Get(r.defaultSiteID); ok {
			return s, true
		}
	}
	if len(r.sites) > 0 {
		return r.sites[0], true
	}
	return nil, false
}

// GetOrDefault resolves a site id that may be empty or unknown. Both cases
// fall through to the default site.
func (r *Registry) GetOrDefault(siteID string) (*Site, bool) {
	if siteID != "" {
		if s, ok := r.Get(siteID); ok {
			return s, true
		}
	}
	return r.DefaultSite()
}

// Has reports whether the site exists and is active.
func (r *Registry) Has(siteID string) bool {
	_, ok := r.Get(siteID)
	return ok
}

func (r *Registry) ActiveSites() []*Site {
	out := make([]*Site, 0, len(r.sites))
	for _, s := range r.sites {
		if s.Active {
			out = append(out, s)
		}
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.sites)
}

type sitesFile struct {
	DefaultSiteID string `toml:"default_site_id"`
	Sites         []struct {
		ID                        string            `toml:"id"`
		Name                      string            `toml:"name"`
		Domain                    string            `toml:"domain"`
		StatementDescriptorSuffix string            `toml:"statement_descriptor_suffix"`
		SuccessURL                string            `toml:"success_url"`
		CancelURL                 string            `toml:"cancel_url"`
		SupportEmail              string            `toml:"support_email"`
		Active                    *bool             `toml:"active"`
		Metadata                  map[string]string `toml:"metadata"`
	} `toml:"sites"`
}

// Parse builds a registry from TOML bytes. Success/cancel URLs default to
// the conventional paths on the site's domain when omitted.
func Parse(data []byte) (*Registry, error) {
	var file sitesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse sites: %w", err)
	}

	r := NewRegistry()
	r.defaultSiteID = file.DefaultSiteID

	for _, entry := range file.Sites {
		if entry.ID == "" {
			return nil, fmt.Errorf("parse sites: site with empty id")
		}

		active := true
		if entry.Active != nil {
			active = *entry.Active
		}
		successURL := entry.SuccessURL
		if successURL == "" {
			successURL = fmt.Sprintf("https://%s/checkout/success", entry.Domain)
		}
		cancelURL := entry.CancelURL
		if cancelURL == "" {
			cancelURL = fmt.Sprintf("https://%s/checkout/cancel", entry.Domain)
		}

		r.Add(&Site{
			ID:                        entry.ID,
			Name:                      entry.Name,
			Domain:                    entry.Domain,
			StatementDescriptorSuffix: entry.StatementDescriptorSuffix,
			SuccessURL:                successURL,
			CancelURL:                 cancelURL,
			SupportEmail:              entry.SupportEmail,
			Active:                    active,
			Metadata:                  entry.Metadata,
		})
	}

	return r, nil
}

// Load reads the sites file from disk; a missing file yields an empty
// registry so single-tenant deployments can skip it entirely.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewRegistry(), nil
		}
		return nil, fmt.Errorf("read sites file: %w", err)
	}
	return Parse(data)
}
