package session

import (
	"strings"
	"unicode"

	"github.com/s2tools/s2ui/pkg/uiscript"
)

// captionIIDs are element kinds whose captions tend to hold user-facing
// text, checked in this order.
var captionIIDs = []string{
	"IGZWinText", "IGZWinTextEdit", "IGZWinBtn",
	"IGZWinFlatRect", "IGZWinBMP", "IGZWinGen",
}

// collectCaptions runs after loading and labels scripts with user-facing
// caption text, so resources show as more than hex ids. Labels are only
// appended; pages rendered before the pass completes just lack hints.
func (s *Session) collectCaptions(scripts map[ScriptKey]*Script) {
	for key, script := range scripts {
		if script.Root == nil {
			continue
		}
		hints := captionHints(script.Root)
		if len(hints) == 0 {
			continue
		}
		s.mu.Lock()
		// Skip stale generations replaced while this pass ran.
		if current, ok := s.scripts[key]; ok && current == script {
			s.captions[key] = hints
		}
		s.mu.Unlock()
	}
}

// Captions returns the caption hints found for one variant. The first
// entry names the resource in listings.
func (s *Session) Captions(key ScriptKey) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.captions[key]
}

// GroupCaption returns the longest caption hint across a group's variants,
// used to label the group itself.
func (s *Session) GroupCaption(keys []ScriptKey) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	longest := ""
	for _, key := range keys {
		for _, hint := range s.captions[key] {
			if len(hint) > len(longest) {
				longest = hint
			}
		}
	}
	return longest
}

// captionHints collects user-facing captions from a parsed script.
// Technical captions (key=value data, ALLCAPS or alllowercase identifiers)
// are excluded; escaped line breaks collapse to spaces.
func captionHints(root *uiscript.Root) []string {
	var matches []string
	for _, iid := range captionIIDs {
		for _, el := range root.FindByAttribute("iid", iid) {
			for _, caption := range el.AttrValues("caption") {
				if usableCaption(caption) {
					matches = append(matches, strings.ReplaceAll(caption, `\r\n`, " "))
				}
			}
		}
		if len(matches) > 0 {
			break
		}
	}
	return matches
}

func usableCaption(caption string) bool {
	if caption == "" || strings.Contains(caption, "=") {
		return false
	}
	return !allUpper(caption) && !allLower(caption)
}

// allUpper reports whether every cased rune is upper case, with at least
// one cased rune present.
func allUpper(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			cased = true
		}
	}
	return cased
}

func allLower(s string) bool {
	cased := false
	for _, r := range s {
		if unicode.IsUpper(r) {
			return false
		}
		if unicode.IsLower(r) {
			cased = true
		}
	}
	return cased
}
