package insert

import (
	"errors"
	"fmt"
)

// ErrUnsupportedKind is returned for markup kinds outside the closed set.
var ErrUnsupportedKind = errors.New("unsupported markup kind")

// Kind identifies a Markdown insertion template.
type Kind int

const (
	H1 Kind = iota + 1
	H2
	H3
	H4
	Image
	Link
	Code
)

// Kinds lists every supported kind in toolbar order.
var Kinds = []Kind{H1, H2, H3, H4, Image, Link, Code}

var kindNames = map[Kind]string{
	H1:    "h1",
	H2:    "h2",
	H3:    "h3",
	H4:    "h4",
	Image: "image",
	Link:  "link",
	Code:  "code",
}

// String returns the toolbar token for k.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Valid reports whether k belongs to the supported set.
func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

// headingLevel returns 1..4 for heading kinds and 0 otherwise.
func (k Kind) headingLevel() int {
	switch k {
	case H1, H2, H3, H4:
		return int(k-H1) + 1
	default:
		return 0
	}
}

// ParseKind maps a toolbar token ("h1", "link", ...) to its Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedKind, s)
}
