package literate

import (
	"fmt"
	"sort"
	"strings"
)

// abbrevSuffix marks an abbreviated chunk title: the text before the
// suffix is a prefix of exactly one full title.
const abbrevSuffix = "..."

// ResolveTitle resolves a possibly abbreviated chunk title against the
// set of known titles. A title without the ellipsis suffix is already
// full and is returned unchanged. Otherwise the prefix must match
// exactly one known title: zero matches yield [ErrUnknownTitle], two or
// more yield [ErrAmbiguousTitle].
func ResolveTitle(raw string, names map[string]struct{}) (string, error) {
	if !strings.HasSuffix(raw, abbrevSuffix) {
		return raw, nil
	}
	prefix := strings.TrimSuffix(raw, abbrevSuffix)

	var matches []string
	for name := range names {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("%w: no title starts with %q", ErrUnknownTitle, prefix)
	default:
		sort.Strings(matches)
		return "", fmt.Errorf("%w: %q matches %s", ErrAmbiguousTitle, prefix, strings.Join(matches, ", "))
	}
}
