package scan

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/s2tools/s2ui/internal/gamedata"
	"github.com/s2tools/s2ui/pkg/dbpf"
)

// Result holds everything gathered from one pass over a set of packages.
// The packages stay open so entry data can be read lazily; Close releases
// them when the result is replaced on reload.
type Result struct {
	Occurrences []*Occurrence
	Graphics    *GraphicsCache
	Games       []string // sorted unique game layers seen
	packages    []*dbpf.Package
}

// Close closes every package opened during the scan.
func (r *Result) Close() {
	for _, pkg := range r.packages {
		pkg.Close()
	}
	r.packages = nil
}

// Packages scans the given package files in one synchronous pass. A
// package that fails to open is logged and skipped; individual corrupt
// entries are kept as unreadable occurrences. The scan only fails when no
// package could be read at all.
func Packages(paths []string, log *zap.Logger) (*Result, error) {
	result := &Result{Graphics: NewGraphicsCache()}
	var games []string

	for _, path := range paths {
		pkg, err := dbpf.Open(path)
		if err != nil {
			log.Warn("skipping unreadable package", zap.String("path", path), zap.Error(err))
			continue
		}
		result.packages = append(result.packages, pkg)

		packageName := filepath.Base(path)
		gameName := gamedata.GameName(path)
		games = append(games, gameName)

		for _, entry := range pkg.EntriesByType(dbpf.TypeImage) {
			result.Graphics.put(ResourceKey{entry.GroupID, entry.InstanceID}, entry)
		}

		count := 0
		for _, entry := range pkg.EntriesByType(dbpf.TypeUIData) {
			result.Occurrences = append(result.Occurrences, newOccurrence(entry, packageName, gameName))
			count++
		}

		log.Debug("scanned package",
			zap.String("package", packageName),
			zap.String("game", gameName),
			zap.Int("scripts", count))
	}

	if len(result.packages) == 0 {
		return nil, fmt.Errorf("no readable packages among %d paths", len(paths))
	}

	result.Games = sortedUnique(games)
	return result, nil
}
