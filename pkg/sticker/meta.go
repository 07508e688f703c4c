package sticker

import "strings"

const (
	DefaultAuthor = "Bot"
	DefaultPack   = "Sticker"
)

// Meta is the author/pack pair stamped into the delivered sticker.
type Meta struct {
	Author string
	Pack   string
}

// ParseMeta splits a command argument of the form "author|pack". Both sides
// are optional and trimmed; missing pieces fall back to the defaults.
func ParseMeta(arg string) Meta {
	return ParseMetaWith(arg, Meta{})
}

// ParseMetaWith is ParseMeta with configurable fallbacks. Empty fields in
// defaults fall back to the package constants.
func ParseMetaWith(arg string, defaults Meta) Meta {
	meta := defaults
	if meta.Author == "" {
		meta.Author = DefaultAuthor
	}
	if meta.Pack == "" {
		meta.Pack = DefaultPack
	}

	arg = strings.TrimSpace(arg)
	if arg == "" {
		return meta
	}

	parts := strings.Split(arg, "|")
	if author := strings.TrimSpace(parts[0]); author != "" {
		meta.Author = author
	}
	if len(parts) > 1 {
		if pack := strings.TrimSpace(parts[1]); pack != "" {
			meta.Pack = pack
		}
	}
	return meta
}
