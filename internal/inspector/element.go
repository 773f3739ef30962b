// Package inspector renders UI script resources for a browser: HTML views
// of the element tree, reconstructed images, per-element properties, and
// search across every loaded script.
package inspector

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/s2tools/s2ui/pkg/uiscript"
)

// ElementID derives a stable DOM id for an element from its attribute
// sequence, so selection can round-trip between the rendered page and the
// element listing.
func ElementID(el *uiscript.Element) string {
	h := md5.New()
	for _, attr := range el.Attrs {
		h.Write([]byte(attr.Key))
		h.Write([]byte(attr.Value))
	}
	return "s2ui_" + hex.EncodeToString(h.Sum(nil))
}
