package uiscript

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedImageRef reports an image attribute that cannot be split into
// two hex fields. Callers treat this the same as a missing graphic.
var ErrMalformedImageRef = errors.New("malformed image reference")

// ParseImageRef parses an image attribute value of the form
// "{0x499db772,0xa9500615}" into its group and instance IDs.
func ParseImageRef(attr string) (groupID, instanceID uint32, err error) {
	trimmed := strings.TrimSpace(attr)
	if len(trimmed) < 2 || trimmed[0] != '{' || trimmed[len(trimmed)-1] != '}' {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedImageRef, attr)
	}

	groupField, instanceField, found := strings.Cut(trimmed[1:len(trimmed)-1], ",")
	if !found {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedImageRef, attr)
	}

	group, err := parseHex(groupField)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedImageRef, attr)
	}
	instance, err := parseHex(instanceField)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrMalformedImageRef, attr)
	}

	return group, instance, nil
}

func parseHex(field string) (uint32, error) {
	s := strings.TrimPrefix(strings.TrimSpace(field), "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	return uint32(v), err
}
