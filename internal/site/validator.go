package site

import (
	"errors"
	"net/url"
	"regexp"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

var (
	// basePathRegex accepts "/seg" or "/seg/seg..." with no trailing slash.
	basePathRegex = regexp.MustCompile(`^(/[^/\s]+)+$`)

	// slugRegex accepts "section/page".
	slugRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*/[a-z0-9][a-z0-9_-]*$`)
)

// Load validates raw and returns the typed configuration. Validation stops
// at the first failure and returns a *ConfigError; no partially built Config
// is ever returned.
func Load(raw Raw) (*Config, error) {
	identity, err := validateIdentity(raw)
	if err != nil {
		return nil, err
	}

	integrations, err := validateIntegrations(raw.Integrations)
	if err != nil {
		return nil, err
	}

	sidebar, disabled, err := validateSidebar(raw.Sidebar)
	if err != nil {
		return nil, err
	}

	return &Config{
		Site:         identity,
		Integrations: integrations,
		Sidebar:      sidebar,
		Disabled:     disabled,
	}, nil
}

func validateIdentity(raw Raw) (SiteIdentity, error) {
	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return SiteIdentity{}, newError(KindMissingField, field.NewPath("title"), "title is required")
	}

	urlPath := field.NewPath("canonicalUrl")
	if strings.TrimSpace(raw.CanonicalURL) == "" {
		return SiteIdentity{}, newError(KindMissingField, urlPath, "canonical URL is required")
	}
	if err := ValidateCanonicalURL(raw.CanonicalURL); err != nil {
		return SiteIdentity{}, newError(KindInvalidCanonicalURL, urlPath, "%q is not an absolute http(s) URL", raw.CanonicalURL)
	}

	if !ValidBasePath(raw.BasePath) {
		return SiteIdentity{}, newError(KindInvalidBasePath, field.NewPath("basePath"),
			"%q must be empty or start with '/' and have no trailing slash", raw.BasePath)
	}

	return SiteIdentity{
		Title:        title,
		CanonicalURL: raw.CanonicalURL,
		BasePath:     raw.BasePath,
	}, nil
}

func validateIntegrations(raw []RawIntegration) ([]Integration, error) {
	root := field.NewPath("integrations")
	out := make([]Integration, 0, len(raw))

	for i, ri := range raw {
		namePath := root.Index(i).Child("name")
		if strings.TrimSpace(ri.Name) == "" {
			return nil, newError(KindMissingField, namePath, "integration name is required")
		}

		kind := IntegrationKind(ri.Name)
		if !kind.IsValid() {
			return nil, newError(KindUnknownIntegration, namePath, "unknown integration %q", ri.Name)
		}

		out = append(out, Integration{
			Kind:    kind,
			Options: copyOptions(ri.Options),
		})
	}

	return out, nil
}

func validateSidebar(raw []RawGroup) ([]SidebarGroup, int, error) {
	root := field.NewPath("sidebar")
	seen := sets.New[string]()
	groups := make([]SidebarGroup, 0, len(raw))
	disabled := 0

	for i, rg := range raw {
		groupPath := root.Index(i)
		if strings.TrimSpace(rg.Label) == "" {
			return nil, 0, newError(KindMissingField, groupPath.Child("label"), "group label is required")
		}

		entriesPath := groupPath.Child("entries")
		if len(rg.Entries) == 0 {
			return nil, 0, newError(KindEmptyGroup, entriesPath, "group %q has no entries", rg.Label)
		}

		groupEnabled := isEnabled(rg.Enabled)
		group := SidebarGroup{Label: rg.Label}

		for j, re := range rg.Entries {
			entryPath := entriesPath.Index(j)
			if !ValidSlug(re.Slug) {
				return nil, 0, newError(KindInvalidSlugFormat, entryPath.Child("slug"),
					"%q is not of the form section/page", re.Slug)
			}

			if !groupEnabled || !isEnabled(re.Enabled) {
				disabled++
				continue
			}

			if strings.TrimSpace(re.Label) == "" {
				return nil, 0, newError(KindMissingField, entryPath.Child("label"), "entry label is required")
			}
			if seen.Has(re.Slug) {
				return nil, 0, newError(KindDuplicateSlug, entryPath.Child("slug"),
					"slug %q is already used by another entry", re.Slug)
			}
			seen.Insert(re.Slug)

			group.Entries = append(group.Entries, SidebarEntry{Label: re.Label, Slug: re.Slug})
		}

		if !groupEnabled {
			continue
		}
		if len(group.Entries) == 0 {
			return nil, 0, newError(KindEmptyGroup, entriesPath, "every entry of group %q is disabled", rg.Label)
		}
		groups = append(groups, group)
	}

	return groups, disabled, nil
}

// ValidBasePath reports whether p is empty or a slash-prefixed path without a
// trailing slash.
func ValidBasePath(p string) bool {
	return p == "" || basePathRegex.MatchString(p)
}

// ValidSlug reports whether s has the form section/page.
func ValidSlug(s string) bool {
	return slugRegex.MatchString(s)
}

// ValidateCanonicalURL checks that u is an absolute http or https URL.
func ValidateCanonicalURL(u string) error {
	parsed, err := url.Parse(u)
	if err != nil {
		return err
	}
	if (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return &url.Error{Op: "parse", URL: u, Err: errNotAbsolute}
	}
	return nil
}

var errNotAbsolute = errors.New("not an absolute http(s) URL")

// copyOptions deep-copies nested maps and slices so the validated config
// does not share mutable state with the raw document.
func copyOptions(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyOptions(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	default:
		return v
	}
}
