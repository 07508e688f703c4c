package sticker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stageIndex(t *testing.T, filter, stage string) int {
	t.Helper()
	idx := strings.Index(filter, stage)
	assert.NotEqual(t, -1, idx, "missing stage %q in %q", stage, filter)
	return idx
}

func TestBuildFilterStageOrder(t *testing.T) {
	filter := BuildFilter(15)

	scale := stageIndex(t, filter, "scale=")
	sar := stageIndex(t, filter, "setsar=1")
	crop := stageIndex(t, filter, "crop=trunc(iw/2)*2:trunc(ih/2)*2")
	format := stageIndex(t, filter, "format=rgba")
	pad := stageIndex(t, filter, "pad=512:512:-1:-1:color=#00000000")
	fps := stageIndex(t, filter, "fps=15")

	assert.Less(t, scale, sar)
	assert.Less(t, sar, crop)
	assert.Less(t, crop, format)
	assert.Less(t, format, pad)
	assert.Less(t, pad, fps)
}

func TestBuildFilterNeverUpscales(t *testing.T) {
	filter := BuildFilter(0)
	assert.Contains(t, filter, "min(512,iw)")
	assert.Contains(t, filter, "min(512,ih)")
	assert.Contains(t, filter, "force_original_aspect_ratio=decrease")
	assert.Contains(t, filter, "flags=lanczos")
}

func TestBuildFilterStaticOmitsFPS(t *testing.T) {
	assert.NotContains(t, BuildFilter(0), "fps=")
	assert.NotContains(t, BuildFilter(-1), "fps=")
}

func TestBuildFilterDeterministic(t *testing.T) {
	assert.Equal(t, BuildFilter(15), BuildFilter(15))
	assert.Equal(t, BuildFilter(0), BuildFilter(0))
}

func TestBuildVideoFilter(t *testing.T) {
	filter := BuildVideoFilter(15)

	// No transparency stages: mp4 carries no alpha.
	assert.NotContains(t, filter, "format=rgba")
	assert.NotContains(t, filter, "pad=")

	scale := stageIndex(t, filter, "scale=")
	sar := stageIndex(t, filter, "setsar=1")
	crop := stageIndex(t, filter, "crop=trunc(iw/2)*2:trunc(ih/2)*2")
	fps := stageIndex(t, filter, "fps=15")
	assert.Less(t, scale, sar)
	assert.Less(t, sar, crop)
	assert.Less(t, crop, fps)
}
