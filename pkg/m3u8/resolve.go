package m3u8

import (
	"net/url"
	"path/filepath"
	"strings"
)

// parseAbsolute parses s and reports whether it is an absolute URL on its own
// (it carries a scheme). Relative references never qualify.
func parseAbsolute(s string) (*url.URL, bool) {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return nil, false
	}
	return u, true
}

// Resolve turns a playlist reference into an absolute URL. Absolute
// references are returned unchanged, anything else is joined against base
// following RFC 3986 (dot segments collapse).
func Resolve(ref string, base *url.URL) (*url.URL, error) {
	if u, ok := parseAbsolute(ref); ok {
		return u, nil
	}
	if base == nil {
		return nil, errorf(ErrInvalidReference, "resolve", ref, "no base URL")
	}
	u, err := base.Parse(ref)
	if err != nil {
		return nil, newError(ErrInvalidReference, "resolve", ref, err)
	}
	return u, nil
}

// LocalFilename returns the last path segment of u. When u has no usable path
// segment (root-only or opaque URLs) fallback is returned instead.
//
// Directory structure is flattened: two URLs sharing a basename map to the
// same local file.
func LocalFilename(u *url.URL, fallback string) string {
	if u == nil || u.Opaque != "" {
		return fallback
	}
	p := u.EscapedPath()
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	if p == "" {
		return fallback
	}
	return p
}

// localPath joins name onto dir. Only plain file names are accepted, so every
// file lands directly in dir.
func localPath(dir, name string) (string, error) {
	if name == "" || name == "." || !filepath.IsLocal(name) || filepath.Base(name) != name {
		return "", errorf(ErrInvalidReference, "localize", name, "not a flat file name")
	}
	return filepath.Join(dir, name), nil
}
