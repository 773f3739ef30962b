package inspector

import (
	"sort"
	"strings"

	"github.com/s2tools/s2ui/internal/session"
	"github.com/s2tools/s2ui/pkg/uiscript"
)

// SearchResult is one attribute hit across the loaded scripts.
type SearchResult struct {
	Key       session.ScriptKey
	ElementID string
	Attribute string
	Value     string

	MatchedAttribute bool
	MatchedValue     bool
}

// Search scans every parsed script for attributes and values containing
// the given substrings, case-insensitively. With both terms set, a pair
// must match both; with one term set, that side alone decides. Results are
// sorted so identical queries render identically.
func Search(scripts map[session.ScriptKey]*session.Script, attrib, value string) []SearchResult {
	attrib = strings.ToLower(attrib)
	value = strings.ToLower(value)
	if attrib == "" && value == "" {
		return nil
	}

	var results []SearchResult
	for key, script := range scripts {
		if script.Root == nil {
			continue
		}
		for _, el := range script.Root.Elements() {
			results = append(results, matchElement(key, el, attrib, value)...)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if a.Key.Key != b.Key.Key {
			if a.Key.Key.GroupID != b.Key.Key.GroupID {
				return a.Key.Key.GroupID < b.Key.Key.GroupID
			}
			return a.Key.Key.InstanceID < b.Key.Key.InstanceID
		}
		if a.Key.Checksum != b.Key.Checksum {
			return a.Key.Checksum < b.Key.Checksum
		}
		if a.Attribute != b.Attribute {
			return a.Attribute < b.Attribute
		}
		return a.Value < b.Value
	})
	return results
}

func matchElement(key session.ScriptKey, el *uiscript.Element, attrib, value string) []SearchResult {
	var results []SearchResult
	for _, attr := range el.Attrs {
		foundAttrib := attrib != "" && strings.Contains(strings.ToLower(attr.Key), attrib)
		foundValue := value != "" && strings.Contains(strings.ToLower(attr.Value), value)

		if attrib != "" && value != "" && !(foundAttrib && foundValue) {
			continue
		}
		if !foundAttrib && !foundValue {
			continue
		}

		results = append(results, SearchResult{
			Key:              key,
			ElementID:        ElementID(el),
			Attribute:        attr.Key,
			Value:            attr.Value,
			MatchedAttribute: foundAttrib,
			MatchedValue:     foundValue,
		})
	}
	return results
}
