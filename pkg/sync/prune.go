package sync

import (
	"path/filepath"

	"github.com/arthur-debert/deps/pkg/errors"
	"github.com/arthur-debert/deps/pkg/logging"
	"github.com/arthur-debert/deps/pkg/manifest"
)

// Claimed returns the vendor entry names the manifest accounts for: every
// dependency key and every rename.
func Claimed(m *manifest.Manifest) map[string]bool {
	claimed := make(map[string]bool, len(m.Dependencies))
	for name, dep := range m.Dependencies {
		claimed[name] = true
		if dep.As != "" {
			claimed[dep.As] = true
		}
	}
	return claimed
}

// Prune recursively removes the immediate entries of vendorDir that are not
// claimed. It returns the removed names in order.
func (p *Planner) Prune(vendorDir string, claimed map[string]bool) ([]string, error) {
	logger := logging.GetLogger("sync").With().Str("vendorDir", vendorDir).Logger()

	names, err := p.fs.ReadDirNames(vendorDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileSystem, "failed to list %s", vendorDir)
	}

	var removed []string
	for _, name := range names {
		if claimed[name] {
			continue
		}
		path := filepath.Join(vendorDir, name)
		p.report.Infof("Pruning [path]%s[/path]", path)
		if err := p.fs.RemoveAll(path); err != nil {
			return removed, errors.Wrapf(err, errors.ErrFileSystem, "failed to prune %s", path)
		}
		logger.Debug().Str("entry", name).Msg("Pruned vendor entry")
		removed = append(removed, name)
	}
	return removed, nil
}
