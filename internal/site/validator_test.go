package site

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/sawhil/sitecfg/internal/errors"
)

func boolPtr(b bool) *bool { return &b }

func validRaw() Raw {
	return Raw{
		Title:        "Go FrontEnd",
		CanonicalURL: "https://sawhil.github.io",
		BasePath:     "/gofrontend",
		Integrations: []RawIntegration{
			{Name: "starlight", Options: map[string]any{"social": map[string]any{"github": "https://github.com/sawhil"}}},
		},
		Sidebar: []RawGroup{
			{
				Label: "Browser Internals",
				Entries: []RawEntry{
					{Label: "Introduction", Slug: "browser-internals/introduction"},
					{Label: "What is a browser ?", Slug: "browser-internals/what-is-a-browser"},
				},
			},
			{
				Label: "JavaScript Questions",
				Entries: []RawEntry{
					{Label: "Introduction", Slug: "javascript/introduction"},
					{Label: "Arrow Functions", Slug: "javascript/arrow"},
				},
			},
		},
	}
}

func TestLoad_Valid(t *testing.T) {
	cfg, err := Load(Raw{
		Title:        "Go FrontEnd",
		CanonicalURL: "https://sawhil.github.io",
		BasePath:     "/gofrontend",
		Integrations: []RawIntegration{},
		Sidebar: []RawGroup{
			{
				Label: "JavaScript Questions",
				Entries: []RawEntry{
					{Label: "Arrow Functions", Slug: "javascript/arrow"},
				},
			},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "Go FrontEnd", cfg.Site.Title)
	assert.Equal(t, "https://sawhil.github.io", cfg.Site.CanonicalURL)
	assert.Equal(t, "/gofrontend", cfg.Site.BasePath)
	assert.Empty(t, cfg.Integrations)
	require.Len(t, cfg.Sidebar, 1)
	require.Len(t, cfg.Sidebar[0].Entries, 1)
	assert.Equal(t, SidebarEntry{Label: "Arrow Functions", Slug: "javascript/arrow"}, cfg.Sidebar[0].Entries[0])
}

func TestLoad_Idempotent(t *testing.T) {
	raw := validRaw()

	first, err := Load(raw)
	require.NoError(t, err)
	second, err := Load(raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *Raw)
		wantKind  ErrorKind
		wantField string
	}{
		{
			name:      "empty title",
			mutate:    func(r *Raw) { r.Title = "" },
			wantKind:  KindMissingField,
			wantField: "title",
		},
		{
			name:      "whitespace title",
			mutate:    func(r *Raw) { r.Title = "   " },
			wantKind:  KindMissingField,
			wantField: "title",
		},
		{
			name:      "missing canonical url",
			mutate:    func(r *Raw) { r.CanonicalURL = "" },
			wantKind:  KindMissingField,
			wantField: "canonicalUrl",
		},
		{
			name:      "relative canonical url",
			mutate:    func(r *Raw) { r.CanonicalURL = "sawhil.github.io" },
			wantKind:  KindInvalidCanonicalURL,
			wantField: "canonicalUrl",
		},
		{
			name:      "non http canonical url",
			mutate:    func(r *Raw) { r.CanonicalURL = "ftp://sawhil.github.io" },
			wantKind:  KindInvalidCanonicalURL,
			wantField: "canonicalUrl",
		},
		{
			name:      "base path without leading slash",
			mutate:    func(r *Raw) { r.BasePath = "gofrontend" },
			wantKind:  KindInvalidBasePath,
			wantField: "basePath",
		},
		{
			name:      "base path with trailing slash",
			mutate:    func(r *Raw) { r.BasePath = "/gofrontend/" },
			wantKind:  KindInvalidBasePath,
			wantField: "basePath",
		},
		{
			name:      "base path root only",
			mutate:    func(r *Raw) { r.BasePath = "/" },
			wantKind:  KindInvalidBasePath,
			wantField: "basePath",
		},
		{
			name: "unknown integration",
			mutate: func(r *Raw) {
				r.Integrations = append(r.Integrations, RawIntegration{Name: "vue"})
			},
			wantKind:  KindUnknownIntegration,
			wantField: "integrations[1].name",
		},
		{
			name: "integration without name",
			mutate: func(r *Raw) {
				r.Integrations = []RawIntegration{{Name: ""}}
			},
			wantKind:  KindMissingField,
			wantField: "integrations[0].name",
		},
		{
			name: "empty group",
			mutate: func(r *Raw) {
				r.Sidebar = append(r.Sidebar, RawGroup{Label: "System Design", Entries: []RawEntry{}})
			},
			wantKind:  KindEmptyGroup,
			wantField: "sidebar[2].entries",
		},
		{
			name: "group with every entry disabled",
			mutate: func(r *Raw) {
				r.Sidebar[1].Entries[0].Enabled = boolPtr(false)
				r.Sidebar[1].Entries[1].Enabled = boolPtr(false)
			},
			wantKind:  KindEmptyGroup,
			wantField: "sidebar[1].entries",
		},
		{
			name:      "group without label",
			mutate:    func(r *Raw) { r.Sidebar[0].Label = "" },
			wantKind:  KindMissingField,
			wantField: "sidebar[0].label",
		},
		{
			name:      "entry without label",
			mutate:    func(r *Raw) { r.Sidebar[0].Entries[1].Label = "" },
			wantKind:  KindMissingField,
			wantField: "sidebar[0].entries[1].label",
		},
		{
			name:      "slug without section",
			mutate:    func(r *Raw) { r.Sidebar[0].Entries[0].Slug = "introduction" },
			wantKind:  KindInvalidSlugFormat,
			wantField: "sidebar[0].entries[0].slug",
		},
		{
			name:      "slug with three segments",
			mutate:    func(r *Raw) { r.Sidebar[0].Entries[0].Slug = "a/b/c" },
			wantKind:  KindInvalidSlugFormat,
			wantField: "sidebar[0].entries[0].slug",
		},
		{
			name:      "slug with uppercase",
			mutate:    func(r *Raw) { r.Sidebar[0].Entries[0].Slug = "JavaScript/Arrow" },
			wantKind:  KindInvalidSlugFormat,
			wantField: "sidebar[0].entries[0].slug",
		},
		{
			name:      "invalid slug on disabled entry",
			mutate:    func(r *Raw) { r.Sidebar[0].Entries[0] = RawEntry{Label: "x", Slug: "bad", Enabled: boolPtr(false)} },
			wantKind:  KindInvalidSlugFormat,
			wantField: "sidebar[0].entries[0].slug",
		},
		{
			name: "duplicate slug across groups",
			mutate: func(r *Raw) {
				r.Sidebar[0].Entries[1].Slug = "javascript/arrow"
			},
			wantKind:  KindDuplicateSlug,
			wantField: "sidebar[1].entries[1].slug",
		},
		{
			name: "duplicate slug within a group",
			mutate: func(r *Raw) {
				r.Sidebar[1].Entries = append(r.Sidebar[1].Entries, RawEntry{Label: "Arrows again", Slug: "javascript/arrow"})
			},
			wantKind:  KindDuplicateSlug,
			wantField: "sidebar[1].entries[2].slug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			tt.mutate(&raw)

			cfg, err := Load(raw)
			require.Error(t, err)
			assert.Nil(t, cfg)

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.wantKind, cfgErr.Kind)
			assert.Equal(t, tt.wantField, cfgErr.Field)
			assert.True(t, errors.Is(err, oerrors.ErrValidation))
		})
	}
}

func TestLoad_ErrorSentinels(t *testing.T) {
	_, err := Load(Raw{Title: "", CanonicalURL: "https://x.test"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingField)
	assert.NotErrorIs(t, err, ErrDuplicateSlug)

	raw := validRaw()
	raw.Sidebar[0].Entries[0].Slug = "javascript/arrow"
	_, err = Load(raw)
	assert.ErrorIs(t, err, ErrDuplicateSlug)
	assert.ErrorIs(t, err, &ConfigError{})
}

func TestLoad_DisabledEntries(t *testing.T) {
	raw := validRaw()
	// Same page authored twice, one copy switched off.
	raw.Sidebar[1].Entries = append(raw.Sidebar[1].Entries,
		RawEntry{Label: "Arrow Functions (draft)", Slug: "javascript/arrow", Enabled: boolPtr(false)})
	raw.Sidebar = append(raw.Sidebar, RawGroup{
		Label:   "Machine Coding",
		Enabled: boolPtr(false),
		Entries: []RawEntry{
			{Label: "Introduction", Slug: "machine-coding/introduction"},
			{Label: "Like Button", Slug: "machine-coding/like-button"},
		},
	})

	cfg, err := Load(raw)
	require.NoError(t, err)

	assert.Len(t, cfg.Sidebar, 2)
	assert.Equal(t, 4, cfg.EntryCount())
	assert.Equal(t, 3, cfg.Disabled)

	_, ok := cfg.Lookup("machine-coding/like-button")
	assert.False(t, ok)
	entry, ok := cfg.Lookup("javascript/arrow")
	require.True(t, ok)
	assert.Equal(t, "Arrow Functions", entry.Label)
}

func TestLoad_ExplicitlyEnabled(t *testing.T) {
	raw := validRaw()
	raw.Sidebar[0].Enabled = boolPtr(true)
	raw.Sidebar[0].Entries[0].Enabled = boolPtr(true)

	cfg, err := Load(raw)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Disabled)
	assert.Equal(t, 4, cfg.EntryCount())
}

func TestLoad_OptionsAreCopied(t *testing.T) {
	raw := validRaw()
	cfg, err := Load(raw)
	require.NoError(t, err)

	raw.Integrations[0].Options["social"].(map[string]any)["github"] = "changed"

	starlight, ok := cfg.Integration(IntegrationStarlight)
	require.True(t, ok)
	assert.Equal(t, "https://github.com/sawhil", starlight.Options["social"].(map[string]any)["github"])
}

func TestConfig_Slugs(t *testing.T) {
	cfg, err := Load(validRaw())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"browser-internals/introduction",
		"browser-internals/what-is-a-browser",
		"javascript/arrow",
		"javascript/introduction",
	}, cfg.Slugs())
}

func TestConfig_Integration(t *testing.T) {
	cfg, err := Load(validRaw())
	require.NoError(t, err)

	_, ok := cfg.Integration(IntegrationTailwind)
	assert.False(t, ok)
	got, ok := cfg.Integration(IntegrationStarlight)
	assert.True(t, ok)
	assert.Equal(t, IntegrationStarlight, got.Kind)
}

func TestSidebarEntry_Section(t *testing.T) {
	assert.Equal(t, "javascript", SidebarEntry{Slug: "javascript/arrow"}.Section())
}

func TestValidBasePath(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"/gofrontend", true},
		{"/docs/v2", true},
		{"/", false},
		{"docs", false},
		{"/docs/", false},
		{"//docs", false},
		{"/has space", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidBasePath(tt.in))
		})
	}
}

func TestValidSlug(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"javascript/arrow", true},
		{"browser-internals/what-is-a-browser", true},
		{"system-design/functional_requirements", true},
		{"v2/intro", true},
		{"", false},
		{"javascript", false},
		{"javascript/", false},
		{"/arrow", false},
		{"JavaScript/arrow", false},
		{"javascript/arrow/deep", false},
		{"-js/arrow", false},
		{"javascript/arrow functions", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidSlug(tt.in))
		})
	}
}

func TestIntegrationKind_IsValid(t *testing.T) {
	for _, k := range SupportedIntegrations() {
		assert.True(t, k.IsValid(), k.String())
	}
	assert.False(t, IntegrationKind("mdx").IsValid())
	assert.False(t, IntegrationKind("").IsValid())
}

func TestConfigError_Hint(t *testing.T) {
	err := &ConfigError{Kind: KindUnknownIntegration, Field: "integrations[0].name", Detail: `unknown integration "vue"`}
	assert.Contains(t, err.Hint(), "starlight, react, tailwind")
	assert.Equal(t, `UnknownIntegration at integrations[0].name: unknown integration "vue"`, err.Error())

	bare := &ConfigError{Kind: KindSchemaViolation, Detail: "bad"}
	assert.Equal(t, "SchemaViolation: bad", bare.Error())
}
