package sarif

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

// ErrUnsupportedScheme is returned for artifact URIs that do not name a local file.
var ErrUnsupportedScheme = errors.New("unsupported URI scheme")

// NormalizeURI converts an artifact URI into a filesystem path. file:// URIs
// are stripped to their path; anything without a scheme is taken as a
// relative or absolute path. Percent-escapes are decoded and the result is
// cleaned for the host OS.
func NormalizeURI(uri string) (string, error) {
	if uri == "" {
		return "", errors.New("empty artifact URI")
	}

	scheme, rest, hasScheme := strings.Cut(uri, ":")
	// A single letter before the colon is a Windows drive, not a scheme.
	if hasScheme && len(scheme) > 1 && !strings.ContainsAny(scheme, `/\`) {
		if !strings.EqualFold(scheme, "file") {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, uri)
		}
		return fileURIPath(uri, rest)
	}

	path, err := url.PathUnescape(uri)
	if err != nil {
		path = uri
	}
	return filepath.Clean(filepath.FromSlash(path)), nil
}

func fileURIPath(uri, rest string) (string, error) {
	if !strings.HasPrefix(rest, "//") {
		// file:relative/path
		path, err := url.PathUnescape(rest)
		if err != nil {
			return "", fmt.Errorf("artifact URI %q: %w", uri, err)
		}
		return filepath.Clean(filepath.FromSlash(path)), nil
	}

	parsed, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("artifact URI %q: %w", uri, err)
	}
	if parsed.Host != "" && parsed.Host != "localhost" {
		return "", fmt.Errorf("%w: remote host %q in %s", ErrUnsupportedScheme, parsed.Host, uri)
	}

	path := parsed.Path
	// file:///C:/src/x.go
	if len(path) >= 3 && path[0] == '/' && path[2] == ':' && isDriveLetter(path[1]) {
		path = path[1:]
	}
	return filepath.Clean(filepath.FromSlash(path)), nil
}

func isDriveLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// TrimFileScheme strips a leading file:// from uri and leaves the rest as
// written. Commit subjects name the file this way.
func TrimFileScheme(uri string) string {
	const prefix = "file://"
	if len(uri) >= len(prefix) && strings.EqualFold(uri[:len(prefix)], prefix) {
		return uri[len(prefix):]
	}
	return uri
}
