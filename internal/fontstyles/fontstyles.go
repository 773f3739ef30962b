// Package fontstyles reads FontStyle.ini, the game's table of named text
// styles, and turns it into a CSS stylesheet for the inspector web view.
package fontstyles

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Style is one parsed line from the [Font Styles] section.
type Style struct {
	Face        string
	Size        int
	Bold        bool
	Underline   bool
	LineSpacing int
	Antialias   string
	XScale      float64
}

// Fallback families for faces shipped with the game but rarely installed
// on the inspecting machine.
var fallbacks = map[string][]string{
	"ITC Benguiat Gothic":        {"Benguiat Gothic", "Benguiat Gothic Regular", "ITC Benguiat Gothic Regular", "Varela Round"},
	"HelveticaNeueLT Std Medium": {"Helvetica Neue", "Helvetica", "Arial", "Liberation Sans", "DejaVu Sans"},
}

// Find locates the FontStyle.ini to use for an installation. More than one
// game may ship the file (the base game does, University carries an updated
// copy), so the largest one wins. Returns an empty string when none exists.
func Find(root string) string {
	best := ""
	var bestSize int64

	filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if d.Name() != "FontStyle.ini" {
			return nil
		}
		dir := filepath.ToSlash(filepath.Dir(path))
		if !strings.HasSuffix(dir, "Res/UI/Fonts") {
			return nil
		}
		if info, err := d.Info(); err == nil && info.Size() > bestSize {
			best = path
			bestSize = info.Size()
		}
		return nil
	})

	return best
}

// ParseFile reads and parses a FontStyle.ini file.
func ParseFile(path string) (map[string]*Style, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening font styles: %w", err)
	}
	defer file.Close()
	return Parse(file)
}

// Parse reads FontStyle.ini content. Lines in the [Font Styles] section
// have the form
//
//	<style name> = <face>, <size>, <param|param|...>, <GUID>
//
// Comment lines start with ';'. Lines that do not match are skipped so a
// modded or regional file never aborts the whole table.
func Parse(r io.Reader) (map[string]*Style, error) {
	styles := make(map[string]*Style)
	inSection := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		line = strings.ReplaceAll(line, "\t", "")
		line = strings.ReplaceAll(line, "\"", "")
		line = strings.TrimSpace(line)

		if line == "[Font Styles]" {
			inSection = true
			continue
		}
		if strings.HasPrefix(line, "[") {
			inSection = false
		}
		if line == "" || strings.HasPrefix(line, ";") || !inSection {
			continue
		}

		name, style, ok := parseLine(line)
		if ok {
			styles[name] = style
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading font styles: %w", err)
	}

	return styles, nil
}

func parseLine(line string) (string, *Style, bool) {
	name, values, found := strings.Cut(line, "=")
	if !found {
		return "", nil, false
	}
	fields := strings.Split(values, ",")
	if len(fields) < 4 {
		return "", nil, false
	}

	size, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return "", nil, false
	}

	style := &Style{
		Face:   strings.TrimSpace(fields[0]),
		Size:   size,
		XScale: 1.0,
	}
	for _, param := range strings.Split(fields[2], "|") {
		param = strings.TrimSpace(param)
		switch {
		case param == "bold":
			style.Bold = true
		case param == "underline":
			style.Underline = true
		case strings.HasPrefix(param, "aa="):
			style.Antialias = strings.TrimPrefix(param, "aa=")
		case strings.HasPrefix(param, "linespacing="):
			if n, err := strconv.Atoi(strings.TrimPrefix(param, "linespacing=")); err == nil {
				style.LineSpacing = n
			}
		case strings.HasPrefix(param, "xscale="):
			if f, err := strconv.ParseFloat(strings.TrimPrefix(param, "xscale="), 64); err == nil {
				style.XScale = f
			}
		}
	}

	return strings.TrimSpace(name), style, true
}

// Stylesheet renders the styles as CSS rules targeting elements by their
// font attribute. Fonts are not embedded; rendering relies on the faces
// (or their fallbacks) being installed on the system.
func Stylesheet(styles map[string]*Style) string {
	names := make([]string, 0, len(styles))
	for name := range styles {
		names = append(names, name)
	}
	sort.Strings(names)

	var css []string
	for _, name := range names {
		font := styles[name]

		families := append([]string{font.Face}, fallbacks[font.Face]...)
		quoted := make([]string, len(families))
		for i, f := range families {
			quoted[i] = `"` + f + `"`
		}

		css = append(css, fmt.Sprintf(".LEGACY[font='%s'] {", name))
		css = append(css, fmt.Sprintf("    font-family: %s, sans-serif;", strings.Join(quoted, ", ")))
		css = append(css, fmt.Sprintf("    font-size: %dpx;", font.Size))
		css = append(css, fmt.Sprintf("    font-weight: %s;", boldWeight(font.Bold)))
		css = append(css, fmt.Sprintf("    text-decoration: %s;", underlineDecoration(font.Underline)))
		if font.LineSpacing != 0 {
			css = append(css, fmt.Sprintf("    line-height: calc(100%% + %dpx);", font.LineSpacing))
		}
		if font.XScale != 1.0 {
			css = append(css, fmt.Sprintf("    transform: scaleX(%g);", font.XScale))
			css = append(css, "    transform-origin: left;")
		}
		css = append(css, "    text-rendering: optimizeLegibility;")
		css = append(css, "    -webkit-font-smoothing: antialiased;")
		css = append(css, "}")
	}

	return strings.Join(css, "\n")
}

func boldWeight(bold bool) string {
	if bold {
		return "bold"
	}
	return "normal"
}

func underlineDecoration(underline bool) string {
	if underline {
		return "underline"
	}
	return "none"
}
