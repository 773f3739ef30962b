// Package gamedata holds static reference data about The Sims 2 releases:
// the chronological ordering of expansion and stuff packs, and the rules
// for deriving a game name from an install path.
package gamedata

import "strings"

// DefaultExpansionOrder lists known game layers oldest first, newest last.
// Both the disc folder codes (EP1, SP1, ...) and the English retail names
// are listed, since installations use either for the folder holding TSData.
// The table is hand-maintained and has gaps (regional/edition variants);
// callers treat it as injectable configuration, not ground truth.
var DefaultExpansionOrder = []string{
	"Base", "The Sims 2", // 2004
	"EP1", "University", // 2005
	"EP2", "Nightlife", // 2005
	"EP3", "Open For Business", // 2006
	"SP1", "Family Fun Stuff", // 2006
	"SP2", "Glamour Life Stuff", // 2006
	"EP4", "Pets", // 2006
	"SP3", // "Happy Holiday Stuff" (patch)
	"EP5", "Seasons", // 2007
	"SP4", "Celebration! Stuff", // 2007
	"SP5", "H&M® Fashion Stuff", // 2007
	"EP6", "Bon Voyage", // 2007
	"SP6", "Teen Style Stuff", // 2007
	"EP7", "FreeTime", // 2008
	"SP7", "Kitchen & Bath Interior Design Stuff", // 2008
	"SP8", "IKEA® Home Stuff", // 2008
	"EP8", "Apartment Life", // 2008
	"EP9", "Mansion and Garden Stuff", // 2008
	"SP9", // "Fun with Pets" (Ultimate Edition)
}

// GameName derives a human-readable game layer name from a package path.
// The folder holding a TSData directory names the game; the common
// "The Sims 2" prefix is stripped so expansions read as "Pets" rather
// than "The Sims 2 Pets". The base game itself reports "The Sims 2".
func GameName(packagePath string) string {
	// Split on either separator: paths may come from Windows installs.
	parts := strings.FieldsFunc(packagePath, func(r rune) bool {
		return r == '/' || r == '\\'
	})

	name := ""
	for i, part := range parts {
		if part == "TSData" && i > 0 {
			name = parts[i-1]
			break
		}
	}
	if name == "" && len(parts) >= 2 {
		// Single package outside an install tree: use its folder.
		name = parts[len(parts)-2]
	}

	trimmed := strings.TrimPrefix(name, "The Sims 2")
	trimmed = strings.Trim(trimmed, " -_™")
	if trimmed == "" {
		return "The Sims 2"
	}
	return trimmed
}
