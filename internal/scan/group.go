package scan

import (
	"fmt"
	"sort"
)

// Variant is one checksum-distinct version of a logical resource, with
// the sorted-unique set of packages and games that contributed it.
type Variant struct {
	Checksum    Checksum
	Occurrences []*Occurrence
	Packages    []string
	Games       []string
	Latest      bool
}

// Readable reports whether the variant's content can be inspected.
// Sentinel-checksum variants are listed but disabled.
func (v *Variant) Readable() bool {
	return v.Checksum.Hashed()
}

// Group collects every variant observed for one (group id, instance id).
type Group struct {
	Key      ResourceKey
	Variants []*Variant
}

// Single reports whether the group has exactly one variant and can be
// rendered as a single logical resource.
func (g *Group) Single() bool {
	return len(g.Variants) == 1
}

// Games returns the sorted-unique game names across all variants.
func (g *Group) Games() []string {
	var all []string
	for _, v := range g.Variants {
		all = append(all, v.Games...)
	}
	return sortedUnique(all)
}

// Packages returns the sorted-unique package names across all variants.
func (g *Group) Packages() []string {
	var all []string
	for _, v := range g.Variants {
		all = append(all, v.Packages...)
	}
	return sortedUnique(all)
}

// BuildGroups partitions occurrences by resource key, then by checksum
// into variants. Every occurrence lands in exactly one variant of exactly
// one group. Output order is fully determined by sorting (groups by key,
// variants by checksum), never by scan order.
func BuildGroups(occurrences []*Occurrence) []*Group {
	byKey := make(map[ResourceKey]map[Checksum][]*Occurrence)
	for _, occ := range occurrences {
		variants, ok := byKey[occ.Key]
		if !ok {
			variants = make(map[Checksum][]*Occurrence)
			byKey[occ.Key] = variants
		}
		variants[occ.Checksum] = append(variants[occ.Checksum], occ)
	}

	groups := make([]*Group, 0, len(byKey))
	for key, variants := range byKey {
		group := &Group{Key: key}
		for checksum, occs := range variants {
			group.Variants = append(group.Variants, &Variant{
				Checksum:    checksum,
				Occurrences: occs,
				Packages:    sortedUnique(packageNames(occs)),
				Games:       sortedUnique(gameNames(occs)),
			})
		}
		sort.Slice(group.Variants, func(i, j int) bool {
			return group.Variants[i].Checksum < group.Variants[j].Checksum
		})
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool {
		a, b := groups[i].Key, groups[j].Key
		if a.GroupID != b.GroupID {
			return a.GroupID < b.GroupID
		}
		return a.InstanceID < b.InstanceID
	})

	return groups
}

// MarkLatest flags, in every multi-variant group, the variant(s)
// contributed by the newest game layer present in the group. layerOrder
// is oldest first; the scan walks it in reverse so the first hit is the
// latest. Names absent from the table never match, so nothing is flagged
// for unknown layers.
func MarkLatest(groups []*Group, layerOrder []string) {
	for _, group := range groups {
		if group.Single() {
			continue
		}

		latest := ""
		games := group.Games()
		for i := len(layerOrder) - 1; i >= 0 && latest == ""; i-- {
			for _, game := range games {
				if game == layerOrder[i] {
					latest = game
					break
				}
			}
		}
		if latest == "" {
			continue
		}

		for _, variant := range group.Variants {
			variant.Latest = contains(variant.Games, latest)
		}
	}
}

// NameLabel summarizes contributing names for the primary label: a single
// contributor is named directly, several collapse to a count. The full
// sorted list stays available as supplementary detail.
func NameLabel(names []string, noun string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	default:
		return fmt.Sprintf("%d %ss", len(names), noun)
	}
}

func packageNames(occs []*Occurrence) []string {
	names := make([]string, len(occs))
	for i, o := range occs {
		names[i] = o.Package
	}
	return names
}

func gameNames(occs []*Occurrence) []string {
	names := make([]string, len(occs))
	for i, o := range occs {
		names[i] = o.Game
	}
	return names
}

func sortedUnique(names []string) []string {
	seen := make(map[string]bool, len(names))
	var result []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			result = append(result, n)
		}
	}
	sort.Strings(result)
	return result
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
