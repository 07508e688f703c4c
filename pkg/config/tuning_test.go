package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTuningMissingFileDefaults(t *testing.T) {
	tuning, err := LoadTuning(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Bot", tuning.Sticker.Author)
	assert.Equal(t, "Sticker", tuning.Sticker.Pack)
	assert.Equal(t, 60, tuning.Encoder.StaticQuality)
	assert.Equal(t, 65, tuning.Encoder.AnimatedQuality)
}

func TestLoadTuningFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	data := `sticker:
  author: Studio
  pack: House Pack
encoder:
  static_quality: 80
  animated_quality: 70
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	tuning, err := LoadTuning(path)
	require.NoError(t, err)

	assert.Equal(t, "Studio", tuning.Sticker.Author)
	assert.Equal(t, "House Pack", tuning.Sticker.Pack)
	assert.Equal(t, 80, tuning.Encoder.StaticQuality)
	assert.Equal(t, 70, tuning.Encoder.AnimatedQuality)
}

func TestLoadTuningMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sticker: [not: a: map"), 0o600))

	_, err := LoadTuning(path)
	assert.Error(t, err)
}
