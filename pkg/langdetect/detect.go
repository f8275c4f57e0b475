// Package langdetect identifies what kind of file a fix is about to patch.
// It uses go-enry, the linguist port, so that names match what code hosts show.
package langdetect

import (
	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when no language can be determined.
const Unknown = "Text"

// Info describes a source file.
type Info struct {
	// Language is the linguist language name, such as "Go" or "Python".
	Language string

	// Binary is set when the content does not look like text.
	Binary bool

	// Generated is set for files produced by tools, such as protobuf
	// output or minified bundles.
	Generated bool

	// Vendored is set for third-party code paths such as vendor/ or
	// node_modules/.
	Vendored bool
}

// Detect classifies the file at path with the given content.
func Detect(path string, content []byte) Info {
	info := Info{
		Binary:    enry.IsBinary(content),
		Generated: enry.IsGenerated(path, content),
		Vendored:  enry.IsVendor(path),
	}

	if info.Binary {
		info.Language = Unknown
		return info
	}

	info.Language = Language(path, content)
	return info
}

// Language returns the linguist name of the language in content, using path
// as the primary hint. Shebangs win over extensions.
func Language(path string, content []byte) string {
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang
	}
	if lang := enry.GetLanguage(path, content); lang != "" {
		return lang
	}
	return Unknown
}
