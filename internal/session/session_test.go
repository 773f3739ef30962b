package session

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/s2tools/s2ui/pkg/dbpf"
)

const sampleScript = `<LEGACY clsid=GZWinGen iid=IGZWinGen area=(0,0,200,100) >
<CHILDREN>
<LEGACY clsid=GZWinText iid=IGZWinText caption="Move Family" area=(10,10,190,30) >
</CHILDREN>
`

type pkgEntry struct {
	typeID     uint32
	groupID    uint32
	instanceID uint32
	data       []byte
}

// writeTestPackage builds a minimal uncompressed DBPF file.
func writeTestPackage(t *testing.T, path string, entries []pkgEntry) {
	t.Helper()

	body := new(bytes.Buffer)
	index := new(bytes.Buffer)
	offset := uint32(96)
	for _, e := range entries {
		binary.Write(index, binary.LittleEndian, e.typeID)
		binary.Write(index, binary.LittleEndian, e.groupID)
		binary.Write(index, binary.LittleEndian, e.instanceID)
		binary.Write(index, binary.LittleEndian, offset)
		binary.Write(index, binary.LittleEndian, uint32(len(e.data)))
		body.Write(e.data)
		offset += uint32(len(e.data))
	}

	header := make([]byte, 96)
	copy(header, "DBPF")
	binary.LittleEndian.PutUint32(header[4:], 1)
	binary.LittleEndian.PutUint32(header[36:], 7)
	binary.LittleEndian.PutUint32(header[40:], uint32(len(entries)))
	binary.LittleEndian.PutUint32(header[44:], offset)
	binary.LittleEndian.PutUint32(header[48:], uint32(index.Len()))
	binary.LittleEndian.PutUint32(header[60:], 1)

	file := append(append(header, body.Bytes()...), index.Bytes()...)
	if err := os.WriteFile(path, file, 0644); err != nil {
		t.Fatalf("writing test package: %v", err)
	}
}

func installPackage(t *testing.T, root, game string, entries []pkgEntry) string {
	t.Helper()
	dir := filepath.Join(root, game, "TSData", "Res", "UI")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating directories: %v", err)
	}
	path := filepath.Join(dir, "ui.package")
	writeTestPackage(t, path, entries)
	return path
}

func TestDiscover_InstallLayout(t *testing.T) {
	root := t.TempDir()
	base := installPackage(t, root, "The Sims 2", []pkgEntry{
		{dbpf.TypeUIData, 0x1, 0x2, []byte(sampleScript)},
	})

	// A stray package outside the install layout is ignored when the
	// standard layout exists.
	writeTestPackage(t, filepath.Join(root, "ui.package"), []pkgEntry{
		{dbpf.TypeUIData, 0x1, 0x2, []byte(sampleScript)},
	})

	files := Discover(root)
	if len(files) != 1 || files[0] != base {
		t.Errorf("Discover = %v, expected only %s", files, base)
	}
}

func TestDiscover_BareNameFallback(t *testing.T) {
	root := t.TempDir()
	loose := filepath.Join(root, "extracted", "CaSIEUI.data")
	os.MkdirAll(filepath.Dir(loose), 0755)
	writeTestPackage(t, loose, []pkgEntry{
		{dbpf.TypeUIData, 0x1, 0x2, []byte(sampleScript)},
	})

	files := Discover(root)
	if len(files) != 1 || files[0] != loose {
		t.Errorf("Discover = %v, expected fallback to %s", files, loose)
	}
}

func TestDiscover_SingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ui.package")
	writeTestPackage(t, path, nil)

	files := Discover(path)
	if len(files) != 1 || files[0] != path {
		t.Errorf("Discover = %v, expected the file itself", files)
	}
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	installPackage(t, root, "The Sims 2", []pkgEntry{
		{dbpf.TypeUIData, 0x1234, 0x5678, []byte(sampleScript)},
	})
	installPackage(t, root, "The Sims 2 Pets", []pkgEntry{
		{dbpf.TypeUIData, 0x1234, 0x5678, []byte(sampleScript + "\n<LEGACY clsid=GZWinGen >\n")},
	})

	s := New(nil, zap.NewNop())
	defer s.Close()
	if err := s.Load(root); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	groups := s.Groups()
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	if len(groups[0].Variants) != 2 {
		t.Fatalf("expected 2 variants for differing content, got %d", len(groups[0].Variants))
	}

	for _, variant := range groups[0].Variants {
		key := ScriptKey{Key: groups[0].Key, Checksum: variant.Checksum}
		script, ok := s.Script(key)
		if !ok {
			t.Fatalf("script missing for variant %s", variant.Checksum)
		}
		if script.Root == nil {
			t.Errorf("variant %s failed to parse: %v", variant.Checksum, script.Err)
		}
		if variant.Latest && !contains(variant.Games, "Pets") {
			t.Error("latest flag should follow the Pets layer")
		}
	}
}

func TestLoad_NoResources(t *testing.T) {
	s := New(nil, zap.NewNop())
	err := s.Load(t.TempDir())
	if err == nil {
		t.Fatal("expected error for empty folder")
	}
}

func TestLoad_CaptionHints(t *testing.T) {
	root := t.TempDir()
	installPackage(t, root, "The Sims 2", []pkgEntry{
		{dbpf.TypeUIData, 0x1, 0x2, []byte(sampleScript)},
	})

	s := New(nil, zap.NewNop())
	defer s.Close()
	if err := s.Load(root); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	group := s.Groups()[0]
	key := ScriptKey{Key: group.Key, Checksum: group.Variants[0].Checksum}

	// The caption pass runs in the background after Load returns.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if hints := s.Captions(key); len(hints) > 0 {
			if hints[0] != "Move Family" {
				t.Fatalf("hint = %q, expected \"Move Family\"", hints[0])
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("caption hints never appeared")
}

func TestReload_ReplacesGeneration(t *testing.T) {
	root := t.TempDir()
	path := installPackage(t, root, "The Sims 2", []pkgEntry{
		{dbpf.TypeUIData, 0x1, 0x2, []byte(sampleScript)},
	})

	s := New(nil, zap.NewNop())
	defer s.Close()
	if err := s.Load(root); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Rewrite the package with an extra resource and reload.
	writeTestPackage(t, path, []pkgEntry{
		{dbpf.TypeUIData, 0x1, 0x2, []byte(sampleScript)},
		{dbpf.TypeUIData, 0x3, 0x4, []byte("<LEGACY clsid=GZWinGen >")},
	})
	if err := s.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}

	if len(s.Groups()) != 2 {
		t.Errorf("expected 2 groups after reload, got %d", len(s.Groups()))
	}
}

func TestCaptionFilter(t *testing.T) {
	tests := []struct {
		caption  string
		expected bool
	}{
		{"Move Family", true},
		{"", false},
		{"kCollapsedRows=1", false},
		{"ALLCAPS", false},
		{"lowercase", false},
		{"Mixed Case Words", true},
	}
	for _, tc := range tests {
		if got := usableCaption(tc.caption); got != tc.expected {
			t.Errorf("usableCaption(%q) = %v, expected %v", tc.caption, got, tc.expected)
		}
	}
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
