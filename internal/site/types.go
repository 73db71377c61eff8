// Package site defines the site configuration model of a static documentation
// site and the validator that turns a raw declarative document into it.
package site

import (
	"sort"
	"strings"
)

// IntegrationKind names a feature integration understood by the site builder.
type IntegrationKind string

const (
	// IntegrationStarlight is the documentation theme.
	IntegrationStarlight IntegrationKind = "starlight"

	// IntegrationReact is the UI framework bridge.
	IntegrationReact IntegrationKind = "react"

	// IntegrationTailwind is the CSS utility plugin.
	IntegrationTailwind IntegrationKind = "tailwind"
)

// IsValid reports whether k is on the allow-list.
func (k IntegrationKind) IsValid() bool {
	switch k {
	case IntegrationStarlight, IntegrationReact, IntegrationTailwind:
		return true
	default:
		return false
	}
}

// String returns the integration name.
func (k IntegrationKind) String() string {
	return string(k)
}

// SupportedIntegrations returns the allow-list in stable order.
func SupportedIntegrations() []IntegrationKind {
	return []IntegrationKind{IntegrationStarlight, IntegrationReact, IntegrationTailwind}
}

func joinKinds(kinds []IntegrationKind) string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// Raw is the declarative document as authored. It is what a file decoder or
// a caller building a config in code hands to Load.
type Raw struct {
	Title        string           `json:"title,omitempty"`
	CanonicalURL string           `json:"canonicalUrl,omitempty"`
	BasePath     string           `json:"basePath,omitempty"`
	Integrations []RawIntegration `json:"integrations,omitempty"`
	Sidebar      []RawGroup       `json:"sidebar,omitempty"`
}

// RawIntegration is an authored integration entry.
type RawIntegration struct {
	Name    string         `json:"name"`
	Options map[string]any `json:"options,omitempty"`
}

// RawGroup is an authored sidebar group. A nil Enabled means enabled.
type RawGroup struct {
	Label   string     `json:"label"`
	Enabled *bool      `json:"enabled,omitempty"`
	Entries []RawEntry `json:"entries"`
}

// RawEntry is an authored sidebar entry. A nil Enabled means enabled.
type RawEntry struct {
	Label   string `json:"label"`
	Slug    string `json:"slug"`
	Enabled *bool  `json:"enabled,omitempty"`
}

func isEnabled(b *bool) bool {
	return b == nil || *b
}

// SiteIdentity names the site and where it is served from.
type SiteIdentity struct {
	Title        string `json:"title"`
	CanonicalURL string `json:"canonicalUrl"`
	BasePath     string `json:"basePath,omitempty"`
}

// Integration is a validated feature integration. Options are opaque to this
// package and are passed through to the site builder.
type Integration struct {
	Kind    IntegrationKind `json:"name"`
	Options map[string]any  `json:"options,omitempty"`
}

// SidebarGroup is a labelled, ordered list of navigation entries.
type SidebarGroup struct {
	Label   string         `json:"label"`
	Entries []SidebarEntry `json:"entries"`
}

// SidebarEntry points a navigation label at a content page.
type SidebarEntry struct {
	Label string `json:"label"`
	Slug  string `json:"slug"`
}

// Section returns the part of the slug before the slash.
func (e SidebarEntry) Section() string {
	section, _, _ := strings.Cut(e.Slug, "/")
	return section
}

// Config is a validated site configuration. Only active (enabled) groups and
// entries are present.
type Config struct {
	Site         SiteIdentity   `json:"site"`
	Integrations []Integration  `json:"integrations"`
	Sidebar      []SidebarGroup `json:"sidebar"`

	// Disabled counts authored entries excluded from the active tree,
	// including every entry of a disabled group.
	Disabled int `json:"-"`
}

// EntryCount returns the number of active sidebar entries.
func (c *Config) EntryCount() int {
	n := 0
	for _, g := range c.Sidebar {
		n += len(g.Entries)
	}
	return n
}

// Slugs returns every active slug in sorted order.
func (c *Config) Slugs() []string {
	slugs := make([]string, 0, c.EntryCount())
	for _, g := range c.Sidebar {
		for _, e := range g.Entries {
			slugs = append(slugs, e.Slug)
		}
	}
	sort.Strings(slugs)
	return slugs
}

// Lookup finds the active entry for slug.
func (c *Config) Lookup(slug string) (SidebarEntry, bool) {
	for _, g := range c.Sidebar {
		for _, e := range g.Entries {
			if e.Slug == slug {
				return e, true
			}
		}
	}
	return SidebarEntry{}, false
}

// Integration returns the first integration of the given kind.
func (c *Config) Integration(kind IntegrationKind) (Integration, bool) {
	for _, i := range c.Integrations {
		if i.Kind == kind {
			return i, true
		}
	}
	return Integration{}, false
}
