// Package loader reads site configuration files from disk and turns them into
// validated site.Config values.
package loader

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"dario.cat/mergo"
	"github.com/charmbracelet/log"
	"sigs.k8s.io/yaml"

	oerrors "github.com/sawhil/sitecfg/internal/errors"
	"github.com/sawhil/sitecfg/internal/output"
	"github.com/sawhil/sitecfg/internal/site"
)

//go:embed schema.cue
var schemaCUE []byte

// Loader decodes, schema-checks and validates site configuration files.
type Loader struct {
	cueCtx *cue.Context
	schema cue.Value
	log    *log.Logger
}

// New creates a Loader with the embedded structural schema compiled.
func New() (*Loader, error) {
	ctx := cuecontext.New()

	compiled := ctx.CompileBytes(schemaCUE, cue.Filename("schema.cue"))
	if compiled.Err() != nil {
		return nil, fmt.Errorf("compiling schema: %w", compiled.Err())
	}

	def := compiled.LookupPath(cue.ParsePath("#Site"))
	if !def.Exists() {
		return nil, errors.New("schema is missing #Site")
	}

	return &Loader{
		cueCtx: ctx,
		schema: def,
		log:    output.ScopedLogger("loader"),
	}, nil
}

// LoadFile reads the file at path and returns the validated configuration.
func (l *Loader) LoadFile(path string) (*site.Config, error) {
	raw, err := l.DecodeFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := site.Load(raw)
	if err != nil {
		return nil, err
	}

	l.log.Debug("site config loaded",
		"path", path,
		"groups", len(cfg.Sidebar),
		"entries", cfg.EntryCount(),
		"disabled", cfg.Disabled,
		"integrations", len(cfg.Integrations),
	)

	return cfg, nil
}

// LoadVariant decodes base and overlay, merges the overlay onto the base and
// validates the result. Every top-level key the overlay sets replaces the
// base value, including empty ones (basePath: "", integrations: []); lists
// are replaced wholesale, never appended. Failures are returned as a
// *SourceError naming the file that failed.
func (l *Loader) LoadVariant(basePath, overlayPath string) (*site.Config, error) {
	base, _, err := l.decodeFile(basePath)
	if err != nil {
		return nil, &SourceError{Path: basePath, Err: err}
	}

	overlay, keys, err := l.decodeFile(overlayPath)
	if err != nil {
		return nil, &SourceError{Path: overlayPath, Err: err}
	}

	merged, err := Merge(base, overlay, keys)
	if err != nil {
		return nil, &SourceError{Path: mergedPath(basePath, overlayPath), Err: err}
	}

	cfg, err := site.Load(merged)
	if err != nil {
		return nil, &SourceError{Path: mergedPath(basePath, overlayPath), Err: err}
	}

	l.log.Debug("site variant loaded",
		"base", basePath,
		"overlay", overlayPath,
		"overlayKeys", keys,
		"groups", len(cfg.Sidebar),
		"entries", cfg.EntryCount(),
	)

	return cfg, nil
}

// SourceError attributes a load failure to the file it came from. Path is
// "base + overlay" when the merged document is at fault.
type SourceError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *SourceError) Unwrap() error {
	return e.Err
}

func mergedPath(basePath, overlayPath string) string {
	return basePath + " + " + overlayPath
}

// clearers zero one top-level field of a raw document, keyed by its json name.
var clearers = map[string]func(*site.Raw){
	"title":        func(r *site.Raw) { r.Title = "" },
	"canonicalUrl": func(r *site.Raw) { r.CanonicalURL = "" },
	"basePath":     func(r *site.Raw) { r.BasePath = "" },
	"integrations": func(r *site.Raw) { r.Integrations = nil },
	"sidebar":      func(r *site.Raw) { r.Sidebar = nil },
}

// Merge returns base with the overlay applied. keys lists the top-level
// fields the overlay document sets; each of them replaces the base value
// even when empty. Fields the overlay does not set keep the base value.
func Merge(base, overlay site.Raw, keys []string) (site.Raw, error) {
	merged := base
	for _, key := range keys {
		reset, ok := clearers[key]
		if !ok {
			return site.Raw{}, fmt.Errorf("merging overlay: unknown field %q", key)
		}
		reset(&merged)
	}
	if err := mergo.Merge(&merged, overlay); err != nil {
		return site.Raw{}, fmt.Errorf("merging overlay: %w", err)
	}
	return merged, nil
}

// DecodeFile reads path and decodes it into a raw document without running
// the value rules of site.Load. A directory is loaded as a CUE package.
func (l *Loader) DecodeFile(path string) (site.Raw, error) {
	raw, _, err := l.decodeFile(path)
	return raw, err
}

// decodeFile is DecodeFile that also returns the top-level keys the
// document sets, after alias normalisation, in sorted order.
func (l *Loader) decodeFile(path string) (site.Raw, []string, error) {
	if isDir(path) {
		jsonData, err := l.loadCUEPackage(path)
		if err != nil {
			return site.Raw{}, nil, err
		}
		return l.decodeJSON(jsonData)
	}

	format, err := DetectFormat(path)
	if err != nil {
		return site.Raw{}, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return site.Raw{}, nil, oerrors.NewNotFoundError(
				"site configuration not found",
				path,
				"Run 'sitecfg init "+path+"' to create one",
			)
		}
		return site.Raw{}, nil, fmt.Errorf("reading site file: %w", err)
	}

	l.log.Debug("decoding site file", "path", path, "format", format)

	jsonData, err := l.toJSON(data, format, path)
	if err != nil {
		return site.Raw{}, nil, err
	}
	return l.decodeJSON(jsonData)
}

// Decode converts data in the given format into a raw document. name is used
// in CUE error positions.
func (l *Loader) Decode(data []byte, format Format, name string) (site.Raw, error) {
	jsonData, err := l.toJSON(data, format, name)
	if err != nil {
		return site.Raw{}, err
	}

	raw, _, err := l.decodeJSON(jsonData)
	return raw, err
}

// decodeJSON normalizes aliases, checks the schema and decodes the document.
// It also returns the document's top-level keys, sorted.
func (l *Loader) decodeJSON(jsonData []byte) (site.Raw, []string, error) {
	doc := map[string]any{}
	if len(strings.TrimSpace(string(jsonData))) > 0 && string(jsonData) != "null" {
		if err := json.Unmarshal(jsonData, &doc); err != nil {
			return site.Raw{}, nil, &site.ConfigError{
				Kind:   site.KindSchemaViolation,
				Detail: "document must be a mapping: " + err.Error(),
			}
		}
	}
	normalizeAliases(doc)

	if err := l.checkSchema(doc); err != nil {
		return site.Raw{}, nil, err
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return site.Raw{}, nil, fmt.Errorf("re-encoding document: %w", err)
	}

	var raw site.Raw
	if err := json.Unmarshal(normalized, &raw); err != nil {
		return site.Raw{}, nil, fmt.Errorf("decoding document: %w", err)
	}

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return raw, keys, nil
}

func (l *Loader) toJSON(data []byte, format Format, name string) ([]byte, error) {
	switch format {
	case FormatYAML, FormatJSON:
		out, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", format, err)
		}
		return out, nil
	case FormatCUE:
		v := l.cueCtx.CompileBytes(data, cue.Filename(name))
		if v.Err() != nil {
			return nil, fmt.Errorf("compiling %s: %w", name, v.Err())
		}
		if err := v.Validate(cue.Concrete(true)); err != nil {
			return nil, fmt.Errorf("evaluating %s: %w", name, err)
		}
		out, err := v.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("exporting %s: %w", name, err)
		}
		return out, nil
	default:
		return nil, oerrors.Wrap(oerrors.ErrUnsupportedFormat, string(format))
	}
}

// checkSchema unifies the document with #Site and reports the first
// structural violation.
func (l *Loader) checkSchema(doc map[string]any) error {
	v := l.cueCtx.Encode(doc)
	if v.Err() != nil {
		return fmt.Errorf("encoding document for schema check: %w", v.Err())
	}

	err := l.schema.Unify(v).Validate()
	if err == nil {
		return nil
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &site.ConfigError{Kind: site.KindSchemaViolation, Detail: err.Error()}
	}

	first := errs[0]
	format, args := first.Msg()
	return &site.ConfigError{
		Kind:   site.KindSchemaViolation,
		Field:  formatCUEPath(first.Path()),
		Detail: fmt.Sprintf(format, args...),
	}
}

// formatCUEPath renders ["sidebar","0","entries"] as "sidebar[0].entries".
func formatCUEPath(path []string) string {
	var b strings.Builder
	for _, p := range path {
		if _, err := strconv.Atoi(p); err == nil {
			b.WriteString("[" + p + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

// normalizeAliases rewrites the Astro config keys (site, base, items) to the
// names used by site.Raw and lifts title and sidebar out of the starlight
// integration options. The canonical key wins when both are present.
func normalizeAliases(doc map[string]any) {
	renameKey(doc, "site", "canonicalUrl")
	renameKey(doc, "base", "basePath")
	hoistThemeOptions(doc)

	groups, ok := doc["sidebar"].([]any)
	if !ok {
		return
	}
	for _, g := range groups {
		if group, ok := g.(map[string]any); ok {
			renameKey(group, "items", "entries")
		}
	}
}

func renameKey(m map[string]any, from, to string) {
	v, ok := m[from]
	if !ok {
		return
	}
	delete(m, from)
	if _, exists := m[to]; !exists {
		m[to] = v
	}
}

// hoistThemeOptions moves title and sidebar from the starlight integration's
// options to the top level when the top level does not set them.
func hoistThemeOptions(doc map[string]any) {
	integrations, ok := doc["integrations"].([]any)
	if !ok {
		return
	}
	for _, i := range integrations {
		integration, ok := i.(map[string]any)
		if !ok || integration["name"] != string(site.IntegrationStarlight) {
			continue
		}
		opts, ok := integration["options"].(map[string]any)
		if !ok {
			continue
		}
		for _, key := range []string{"title", "sidebar"} {
			v, ok := opts[key]
			if !ok {
				continue
			}
			if _, exists := doc[key]; !exists {
				doc[key] = v
				delete(opts, key)
			}
		}
	}
}
