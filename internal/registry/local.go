package registry

import (
	"net/url"
	"strings"
)

// IsLocal reports whether ref belongs to the page's own origin. Relative
// paths ("./x", "/x" but not "//x"), bare references without "://" and
// absolute URLs starting with the page's scheme://host are local.
func IsLocal(ref, pageURL string) bool {
	if ref == "" {
		return false
	}

	switch {
	case ref[0] == '.':
		return true
	case ref[0] == '/':
		return len(ref) == 1 || ref[1] != '/'
	case isWordChar(ref[0]) && !strings.Contains(ref, "://"):
		return true
	}

	origin := Origin(pageURL)
	return origin != "" && strings.HasPrefix(ref, origin)
}

// Origin returns scheme://host of rawURL, or "" when it has no host.
func Origin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// Resolve turns ref into an absolute URL relative to pageURL.
func Resolve(ref, pageURL string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	r, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(r).String(), nil
}

func isWordChar(c byte) bool {
	return c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}
