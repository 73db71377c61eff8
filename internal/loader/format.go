package loader

import (
	"path/filepath"
	"strings"

	oerrors "github.com/sawhil/sitecfg/internal/errors"
)

// Format is the encoding of a site configuration file.
type Format string

const (
	// FormatYAML is a .yaml or .yml file.
	FormatYAML Format = "yaml"

	// FormatJSON is a .json file.
	FormatJSON Format = "json"

	// FormatCUE is a .cue file. It must evaluate to a concrete value.
	FormatCUE Format = "cue"
)

// DetectFormat picks the decoder from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", oerrors.Wrap(oerrors.ErrUnsupportedFormat, "cannot decode "+filepath.Base(path)+" (want .yaml, .yml, .json or .cue)")
	}
}
