package inspector

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/s2tools/s2ui/internal/fontstyles"
	"github.com/s2tools/s2ui/internal/scan"
	"github.com/s2tools/s2ui/pkg/uiscript"
)

// Property is one row of the element properties listing, with expanded
// detail rows for well-known attributes.
type Property struct {
	Name  string
	Value string

	// Duplicate marks keys that occur more than once on the element.
	Duplicate bool

	// MissingGraphic marks image references with no graphic in any
	// loaded package.
	MissingGraphic bool

	// Swatch holds a CSS color for ...color attributes.
	Swatch string

	Children []Property
}

// Properties expands an element's attribute sequence into display rows.
// Repeated keys produce one row per value, flagged as duplicates.
func Properties(el *uiscript.Element, fonts map[string]*fontstyles.Style, graphics *scan.GraphicsCache) []Property {
	counts := make(map[string]int)
	for _, attr := range el.Attrs {
		counts[attr.Key]++
	}

	props := make([]Property, 0, len(el.Attrs))
	for _, attr := range el.Attrs {
		prop := Property{
			Name:      attr.Key,
			Value:     attr.Value,
			Duplicate: counts[attr.Key] > 1,
		}

		switch attr.Key {
		case "area":
			prop.Children = areaDetails(attr.Value)
		case "image":
			expandImage(&prop, attr.Value, graphics)
		case "font":
			prop.Children = fontDetails(fonts[attr.Value])
		}

		if swatch, ok := colorSwatch(attr.Key, attr.Value); ok {
			prop.Swatch = swatch
		}

		props = append(props, prop)
	}
	return props
}

// areaDetails splits "(x,y,w,h)" into named rows.
func areaDetails(value string) []Property {
	parts := strings.Split(strings.Trim(value, "()"), ",")
	if len(parts) != 4 {
		return nil
	}
	names := []string{"X", "Y", "Width", "Height"}
	details := make([]Property, 4)
	for i := range parts {
		details[i] = Property{Name: names[i], Value: strings.TrimSpace(parts[i])}
	}
	return details
}

func expandImage(prop *Property, value string, graphics *scan.GraphicsCache) {
	groupID, instanceID, err := uiscript.ParseImageRef(value)
	if err != nil {
		prop.MissingGraphic = true
		return
	}
	prop.Children = []Property{
		{Name: "Group ID", Value: fmt.Sprintf("0x%x", groupID)},
		{Name: "Instance ID", Value: fmt.Sprintf("0x%x", instanceID)},
	}
	if _, ok := graphics.Get(scan.ResourceKey{GroupID: groupID, InstanceID: instanceID}); !ok {
		prop.MissingGraphic = true
	}
}

func fontDetails(style *fontstyles.Style) []Property {
	if style == nil {
		return nil
	}
	return []Property{
		{Name: "Font Face", Value: style.Face},
		{Name: "Font Size", Value: strconv.Itoa(style.Size)},
		{Name: "Bold", Value: yesNo(style.Bold)},
		{Name: "Underline", Value: yesNo(style.Underline)},
		{Name: "Line Spacing", Value: strconv.Itoa(style.LineSpacing)},
		{Name: "Antialiasing Mode", Value: style.Antialias},
		{Name: "Horizontal Scaling", Value: strconv.FormatFloat(style.XScale, 'g', -1, 64)},
	}
}

// colorSwatch turns "(r,g,b)" values of color-like attributes into a CSS
// color for a preview swatch.
func colorSwatch(key, value string) (string, bool) {
	if !strings.Contains(key, "color") {
		return "", false
	}
	parts := strings.Split(strings.Trim(value, "()"), ",")
	if len(parts) != 3 {
		return "", false
	}
	rgb := make([]int, 3)
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 255 {
			return "", false
		}
		rgb[i] = n
	}
	return fmt.Sprintf("rgb(%d,%d,%d)", rgb[0], rgb[1], rgb[2]), true
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
