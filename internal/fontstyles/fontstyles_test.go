package fontstyles

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleIni = `; FontStyle.ini
; <style name> = <font face name list>, <size>, <style parameters separated by |>, <GUID>

[Some Other Section]
Ignored = should not parse, 1, none, 0x0

[Font Styles]
GenHeader       = "ITC Benguiat Gothic", 18, bold | aa=smooth, 0xDEADBEEF
BodyText        = "HelveticaNeueLT Std Medium", 11, aa=sharp | linespacing=2, 0x1
Fancy           = "ITC Benguiat Gothic", 14, underline | xscale=0.85, 0x2
; commented     = "Ignored", 99, bold, 0x3
malformed line without separator
`

func TestParse(t *testing.T) {
	styles, err := Parse(strings.NewReader(sampleIni))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(styles) != 3 {
		t.Fatalf("expected 3 styles, got %d", len(styles))
	}
	if _, ok := styles["Ignored"]; ok {
		t.Error("styles outside [Font Styles] must be skipped")
	}

	header := styles["GenHeader"]
	if header == nil {
		t.Fatal("GenHeader not parsed")
	}
	if header.Face != "ITC Benguiat Gothic" || header.Size != 18 {
		t.Errorf("GenHeader = %q size %d", header.Face, header.Size)
	}
	if !header.Bold || header.Underline {
		t.Error("GenHeader should be bold, not underlined")
	}
	if header.Antialias != "smooth" {
		t.Errorf("Antialias = %q, expected smooth", header.Antialias)
	}

	body := styles["BodyText"]
	if body.LineSpacing != 2 {
		t.Errorf("LineSpacing = %d, expected 2", body.LineSpacing)
	}
	if body.XScale != 1.0 {
		t.Errorf("XScale = %g, expected default 1.0", body.XScale)
	}

	fancy := styles["Fancy"]
	if !fancy.Underline || fancy.XScale != 0.85 {
		t.Errorf("Fancy: underline=%v xscale=%g", fancy.Underline, fancy.XScale)
	}
}

func TestStylesheet(t *testing.T) {
	styles, err := Parse(strings.NewReader(sampleIni))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	css := Stylesheet(styles)

	if !strings.Contains(css, ".LEGACY[font='GenHeader'] {") {
		t.Error("missing selector for GenHeader")
	}
	if !strings.Contains(css, `"Varela Round"`) {
		t.Error("missing fallback family for ITC Benguiat Gothic")
	}
	if !strings.Contains(css, "font-weight: bold;") {
		t.Error("missing bold weight")
	}
	if !strings.Contains(css, "line-height: calc(100% + 2px);") {
		t.Error("missing line spacing rule")
	}
	if !strings.Contains(css, "transform: scaleX(0.85);") {
		t.Error("missing xscale transform")
	}

	// Deterministic output.
	if css != Stylesheet(styles) {
		t.Error("stylesheet output differs between identical calls")
	}
}

func TestFind_LargestWins(t *testing.T) {
	root := t.TempDir()

	small := filepath.Join(root, "The Sims 2", "TSData", "Res", "UI", "Fonts")
	large := filepath.Join(root, "The Sims 2 University", "TSData", "Res", "UI", "Fonts")
	os.MkdirAll(small, 0755)
	os.MkdirAll(large, 0755)
	os.WriteFile(filepath.Join(small, "FontStyle.ini"), []byte("[Font Styles]\n"), 0644)
	os.WriteFile(filepath.Join(large, "FontStyle.ini"), []byte(sampleIni), 0644)

	found := Find(root)
	if found != filepath.Join(large, "FontStyle.ini") {
		t.Errorf("Find = %q, expected the larger University copy", found)
	}
}

func TestFind_Missing(t *testing.T) {
	if found := Find(t.TempDir()); found != "" {
		t.Errorf("Find = %q, expected empty for install without fonts", found)
	}
}
