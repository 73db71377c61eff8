package site

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"pgregory.net/rapid"
)

// genRaw draws a configuration that satisfies every invariant. Slugs are made
// unique by embedding the group and entry index in the page segment.
func genRaw(t *rapid.T) Raw {
	raw := Raw{
		Title:        rapid.StringMatching(`[A-Za-z][A-Za-z0-9 ]{0,20}`).Draw(t, "title"),
		CanonicalURL: "https://" + rapid.StringMatching(`[a-z]{1,10}\.(test|dev|io)`).Draw(t, "host"),
		BasePath:     rapid.SampledFrom([]string{"", "/docs", "/gofrontend", "/a/b"}).Draw(t, "basePath"),
	}

	kinds := SupportedIntegrations()
	nInt := rapid.IntRange(0, 3).Draw(t, "integrations")
	for i := 0; i < nInt; i++ {
		raw.Integrations = append(raw.Integrations, RawIntegration{
			Name: string(rapid.SampledFrom(kinds).Draw(t, "kind")),
		})
	}

	nGroups := rapid.IntRange(0, 5).Draw(t, "groups")
	for g := 0; g < nGroups; g++ {
		section := rapid.StringMatching(`[a-z][a-z0-9-]{0,8}`).Draw(t, "section")
		group := RawGroup{Label: fmt.Sprintf("Group %d", g)}
		nEntries := rapid.IntRange(1, 6).Draw(t, "entries")
		for e := 0; e < nEntries; e++ {
			page := rapid.StringMatching(`[a-z][a-z0-9-]{0,8}`).Draw(t, "page")
			group.Entries = append(group.Entries, RawEntry{
				Label: fmt.Sprintf("Entry %d", e),
				Slug:  fmt.Sprintf("%s/%s-%d-%d", section, page, g, e),
			})
		}
		raw.Sidebar = append(raw.Sidebar, group)
	}

	return raw
}

func TestLoad_Property_ValidConfigsLoad(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := genRaw(t)

		cfg, err := Load(raw)
		if err != nil {
			t.Fatalf("valid config rejected: %v", err)
		}

		seen := make(map[string]bool)
		for _, slug := range cfg.Slugs() {
			if seen[slug] {
				t.Fatalf("duplicate slug %q in loaded config", slug)
			}
			seen[slug] = true
		}

		if len(cfg.Sidebar) != len(raw.Sidebar) {
			t.Fatalf("expected %d groups, got %d", len(raw.Sidebar), len(cfg.Sidebar))
		}
	})
}

func TestLoad_Property_Deterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := genRaw(t)

		first, err := Load(raw)
		if err != nil {
			t.Fatalf("first load: %v", err)
		}
		second, err := Load(raw)
		if err != nil {
			t.Fatalf("second load: %v", err)
		}

		if !reflect.DeepEqual(first, second) {
			t.Fatalf("loading twice produced different configs")
		}
	})
}

func TestLoad_Property_DuplicateAlwaysRejected(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := genRaw(t)
		if len(raw.Sidebar) == 0 {
			raw.Sidebar = []RawGroup{{Label: "Only", Entries: []RawEntry{{Label: "One", Slug: "only/one"}}}}
		}

		g := rapid.IntRange(0, len(raw.Sidebar)-1).Draw(t, "dupGroup")
		src := raw.Sidebar[g].Entries[rapid.IntRange(0, len(raw.Sidebar[g].Entries)-1).Draw(t, "dupEntry")]
		raw.Sidebar[g].Entries = append(raw.Sidebar[g].Entries, RawEntry{Label: "Copy", Slug: src.Slug})

		_, err := Load(raw)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) || cfgErr.Kind != KindDuplicateSlug {
			t.Fatalf("expected DuplicateSlug, got %v", err)
		}
	})
}
