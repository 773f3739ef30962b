// Package session owns the loaded state of the inspector: the scanned
// packages, grouped resources, parsed scripts, and font styles for one
// opened installation. A reload replaces the whole generation at once.
package session

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/s2tools/s2ui/internal/fontstyles"
	"github.com/s2tools/s2ui/internal/gamedata"
	"github.com/s2tools/s2ui/internal/scan"
	"github.com/s2tools/s2ui/pkg/uiscript"
)

// ErrNoResources is returned when the selected folder yields no UI
// resources at all. It is the only condition that blocks loading.
var ErrNoResources = errors.New("no UI resources found")

// ScriptKey addresses one variant of one resource.
type ScriptKey struct {
	Key      scan.ResourceKey
	Checksum scan.Checksum
}

// Script is one loaded variant: its source text, parse result, and any
// caption hints found afterwards.
type Script struct {
	Variant *scan.Variant
	Source  []byte
	Root    *uiscript.Root // nil when unreadable or unparseable
	Err     error
}

// Session holds the current scan generation. All accessors take the read
// lock so a concurrent reload never exposes a half-built state.
type Session struct {
	log *zap.Logger

	mu         sync.RWMutex
	path       string
	gameOrder  []string
	result     *scan.Result
	groups     []*scan.Group
	scripts    map[ScriptKey]*Script
	captions   map[ScriptKey][]string
	fonts      map[string]*fontstyles.Style
	stylesheet string
}

// New creates an empty session. gameOrder overrides the built-in release
// table when non-nil.
func New(gameOrder []string, log *zap.Logger) *Session {
	if len(gameOrder) == 0 {
		gameOrder = gamedata.DefaultExpansionOrder
	}
	return &Session{
		log:       log,
		gameOrder: gameOrder,
		scripts:   make(map[ScriptKey]*Script),
		captions:  make(map[ScriptKey][]string),
	}
}

// Load opens an installation directory or a single package file, scans it,
// groups the resources and parses every variant. Caption hints are filled
// in by a background pass afterwards; pages render without them until then.
func (s *Session) Load(path string) error {
	files := Discover(path)
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoResources, path)
	}

	result, err := scan.Packages(files, s.log)
	if err != nil {
		return err
	}
	if len(result.Occurrences) == 0 {
		result.Close()
		return fmt.Errorf("%w in %d packages", ErrNoResources, len(files))
	}

	groups := scan.BuildGroups(result.Occurrences)
	scan.MarkLatest(groups, s.gameOrder)
	scripts := parseScripts(groups, s.log)

	fonts, stylesheet := loadFonts(path, s.log)

	s.mu.Lock()
	old := s.result
	s.path = path
	s.result = result
	s.groups = groups
	s.scripts = scripts
	s.captions = make(map[ScriptKey][]string)
	s.fonts = fonts
	s.stylesheet = stylesheet
	s.mu.Unlock()

	if old != nil {
		old.Close()
	}

	go s.collectCaptions(scripts)

	s.log.Info("session loaded",
		zap.String("path", path),
		zap.Int("packages", len(files)),
		zap.Int("groups", len(groups)),
		zap.Int("scripts", len(scripts)))
	return nil
}

// Reload re-reads the previously opened path from disk.
func (s *Session) Reload() error {
	s.mu.RLock()
	path := s.path
	s.mu.RUnlock()
	if path == "" {
		return errors.New("nothing loaded yet")
	}
	return s.Load(path)
}

// Close releases the open packages.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result != nil {
		s.result.Close()
		s.result = nil
	}
}

// Path returns the currently opened directory or file.
func (s *Session) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

// Groups returns the resource groups of the current generation.
func (s *Session) Groups() []*scan.Group {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.groups
}

// Script returns the loaded script for one variant.
func (s *Session) Script(key ScriptKey) (*Script, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	script, ok := s.scripts[key]
	return script, ok
}

// Scripts returns every loaded script keyed by resource and checksum.
func (s *Session) Scripts() map[ScriptKey]*Script {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scripts
}

// Graphics returns the graphics cache of the current generation.
func (s *Session) Graphics() *scan.GraphicsCache {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return scan.NewGraphicsCache()
	}
	return s.result.Graphics
}

// Fonts returns the parsed font style table, which may be empty.
func (s *Session) Fonts() map[string]*fontstyles.Style {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fonts
}

// Stylesheet returns the CSS generated from the font style table.
func (s *Session) Stylesheet() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stylesheet
}

// parseScripts reads and parses one representative occurrence per variant.
// Variants flagged with a sentinel checksum stay listed without a script.
func parseScripts(groups []*scan.Group, log *zap.Logger) map[ScriptKey]*Script {
	scripts := make(map[ScriptKey]*Script)
	for _, group := range groups {
		for _, variant := range group.Variants {
			key := ScriptKey{Key: group.Key, Checksum: variant.Checksum}
			script := &Script{Variant: variant}
			scripts[key] = script

			if !variant.Readable() {
				continue
			}

			data, err := variant.Occurrences[0].Entry.Data()
			if err != nil {
				script.Err = err
				continue
			}
			script.Source = data

			root, err := uiscript.Parse(data)
			if err != nil {
				script.Err = err
				log.Debug("unparseable script",
					zap.Uint32("group", group.Key.GroupID),
					zap.Uint32("instance", group.Key.InstanceID),
					zap.Error(err))
				continue
			}
			script.Root = root
		}
	}
	return scripts
}

// loadFonts locates and parses the installation's FontStyle.ini. Missing
// fonts never block loading; text just renders with browser defaults.
func loadFonts(path string, log *zap.Logger) (map[string]*fontstyles.Style, string) {
	iniPath := fontstyles.Find(path)
	if iniPath == "" {
		log.Warn("FontStyle.ini not found, fonts may not render properly", zap.String("path", path))
		return nil, ""
	}
	fonts, err := fontstyles.ParseFile(iniPath)
	if err != nil {
		log.Warn("failed to parse FontStyle.ini", zap.String("path", iniPath), zap.Error(err))
		return nil, ""
	}
	log.Debug("loaded font styles", zap.String("path", iniPath), zap.Int("styles", len(fonts)))
	return fonts, fontstyles.Stylesheet(fonts)
}
