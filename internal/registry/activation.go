package registry

import "strings"

// Activation selects which resource classes are watched.
type Activation struct {
	Markup  bool
	Styles  bool
	Scripts bool
	// Notify asks for a one-time acknowledgement when monitoring starts.
	Notify bool
}

// DefaultActivation watches everything without acknowledgement.
func DefaultActivation() Activation {
	return Activation{Markup: true, Styles: true, Scripts: true}
}

// ParseActivation reads activation flags from a script reference carrying the
// marker, e.g. "/live.js#css,js,notify". The second result is false when src
// has no marker. With a marker present, html, css and js are each enabled only
// if they follow '#', ',' or '|'; notify may appear anywhere.
func ParseActivation(src, marker string) (Activation, bool) {
	if marker == "" || !hasMarker(src, marker) {
		return Activation{}, false
	}
	return Activation{
		Markup:  hasToken(src, "html"),
		Styles:  hasToken(src, "css"),
		Scripts: hasToken(src, "js"),
		Notify:  strings.Contains(src, "notify"),
	}, true
}

// hasMarker matches marker at a word boundary.
func hasMarker(src, marker string) bool {
	for off := 0; off < len(src); {
		i := strings.Index(src[off:], marker)
		if i < 0 {
			return false
		}
		i += off
		if i == 0 || !isWordChar(src[i-1]) || !isWordChar(marker[0]) {
			return true
		}
		off = i + 1
	}
	return false
}

func hasToken(src, token string) bool {
	for _, sep := range []string{"#", ",", "|"} {
		if strings.Contains(src, sep+token) {
			return true
		}
	}
	return false
}
