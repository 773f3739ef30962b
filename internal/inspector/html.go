package inspector

import (
	"html"
	"strings"

	"github.com/s2tools/s2ui/pkg/uiscript"
)

// RenderElements turns a parsed script into the HTML body the browser
// lays out. Every element becomes a div carrying its attributes verbatim,
// so the stylesheet can position and skin it the way the game would; the
// element's own id attribute is replaced by the derived DOM id.
func RenderElements(root *uiscript.Root) string {
	var b strings.Builder
	for _, el := range root.Children {
		writeElement(&b, el)
		b.WriteByte('\n')
	}
	return b.String()
}

func writeElement(b *strings.Builder, el *uiscript.Element) {
	b.WriteString(`<div class="LEGACY"`)
	for _, attr := range el.Attrs {
		if attr.Key == "id" {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(attr.Value))
		b.WriteByte('"')
	}
	b.WriteString(` id="`)
	b.WriteString(ElementID(el))
	b.WriteString(`">`)
	for _, child := range el.Children {
		writeElement(b, child)
	}
	b.WriteString(`</div>`)
}
