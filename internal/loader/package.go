package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/load"

	oerrors "github.com/sawhil/sitecfg/internal/errors"
)

// loadCUEPackage evaluates every top-level .cue file in dir as a single
// package and exports the result as JSON. Files in subdirectories
// (including cue.mod/) are not part of the package.
func (l *Loader) loadCUEPackage(dir string) ([]byte, error) {
	files, err := cueFilesInDir(dir)
	if err != nil {
		return nil, fmt.Errorf("enumerating site files: %w", err)
	}
	if len(files) == 0 {
		return nil, oerrors.NewNotFoundError(
			"no .cue files in site directory",
			dir,
			"Put the site configuration in one or more .cue files of the same package",
		)
	}

	l.log.Debug("loading cue package", "dir", dir, "files", len(files))

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}

	instances := load.Instances(files, &load.Config{Dir: absDir})
	if len(instances) == 0 {
		return nil, fmt.Errorf("no CUE instances found in %s", dir)
	}

	inst := instances[0]
	if inst.Err != nil {
		return nil, fmt.Errorf("loading %s: %w", dir, inst.Err)
	}

	v := l.cueCtx.BuildInstance(inst)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", dir, err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", dir, err)
	}

	out, err := v.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("exporting %s: %w", dir, err)
	}
	return out, nil
}

// cueFilesInDir returns the top-level .cue files of dir as "./name" paths
// relative to dir, sorted by name.
func cueFilesInDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".cue") {
			continue
		}
		files = append(files, "./"+filepath.ToSlash(e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// isDir reports whether path names an existing directory.
func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
