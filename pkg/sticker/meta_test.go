package sticker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseMeta(t *testing.T) {
	tests := []struct {
		name       string
		arg        string
		wantAuthor string
		wantPack   string
	}{
		{"author and pack", "Ana|MyPack", "Ana", "MyPack"},
		{"author only", "Ana", "Ana", "Sticker"},
		{"empty", "", "Bot", "Sticker"},
		{"whitespace only", "   ", "Bot", "Sticker"},
		{"padded fields", "  Ana | MyPack ", "Ana", "MyPack"},
		{"empty author", "|MyPack", "Bot", "MyPack"},
		{"empty pack", "Ana|", "Ana", "Sticker"},
		{"bare delimiter", "|", "Bot", "Sticker"},
		{"extra delimiter ignored", "Ana|MyPack|junk", "Ana", "MyPack"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			meta := ParseMeta(tt.arg)
			assert.Equal(t, tt.wantAuthor, meta.Author)
			assert.Equal(t, tt.wantPack, meta.Pack)
		})
	}
}

func TestParseMetaWith(t *testing.T) {
	defaults := Meta{Author: "Studio", Pack: "House Pack"}

	t.Run("defaults used when argument empty", func(t *testing.T) {
		assert.Equal(t, defaults, ParseMetaWith("", defaults))
	})

	t.Run("argument overrides defaults", func(t *testing.T) {
		meta := ParseMetaWith("Ana|MyPack", defaults)
		assert.Equal(t, Meta{Author: "Ana", Pack: "MyPack"}, meta)
	})

	t.Run("partial argument keeps remaining default", func(t *testing.T) {
		meta := ParseMetaWith("Ana", defaults)
		assert.Equal(t, Meta{Author: "Ana", Pack: "House Pack"}, meta)
	})

	t.Run("empty defaults fall back to constants", func(t *testing.T) {
		meta := ParseMetaWith("", Meta{})
		assert.Equal(t, Meta{Author: DefaultAuthor, Pack: DefaultPack}, meta)
	})
}
