package sticker

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThumbnail(t *testing.T) {
	// The runner stands in for the frame grab by writing a real PNG.
	frame := image.NewRGBA(image.Rect(0, 0, 512, 288))
	for y := 0; y < 288; y++ {
		for x := 0; x < 512; x++ {
			frame.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var pngBuf bytes.Buffer
	require.NoError(t, png.Encode(&pngBuf, frame))

	runner := &fakeRunner{handle: func(name string, args []string) ([]byte, error) {
		assert.Contains(t, args, "-vframes")
		return nil, os.WriteFile(args[len(args)-1], pngBuf.Bytes(), 0o600)
	}}
	enc, dir := newTestEncoder(t, runner)

	thumb, err := enc.Thumbnail(context.Background(), []byte("mp4-bytes"))
	require.NoError(t, err)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.LessOrEqual(t, cfg.Width, thumbnailEdge)
	assert.LessOrEqual(t, cfg.Height, thumbnailEdge)

	assertNoScratchLeft(t, dir)
}

func TestThumbnailFrameGrabFails(t *testing.T) {
	runner := &fakeRunner{handle: func(name string, args []string) ([]byte, error) {
		return []byte("no video stream"), assert.AnError
	}}
	enc, dir := newTestEncoder(t, runner)

	_, err := enc.Thumbnail(context.Background(), []byte("mp4-bytes"))
	assert.Error(t, err)
	assertNoScratchLeft(t, dir)
}
