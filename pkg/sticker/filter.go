package sticker

import (
	"fmt"
	"strings"
)

// StickerEdge is the canvas edge length WhatsApp expects for stickers.
const StickerEdge = 512

// BuildFilter returns the ffmpeg filter expression for the sticker path.
// The stage order matters: scaling and SAR normalization first, then the
// even-dimension rounding codecs insist on, then alpha conversion, and only
// then the transparent pad out to the full square canvas. A fps stage is
// appended when fps > 0 (motion input); static images skip it.
func BuildFilter(fps int) string {
	stages := []string{
		// Fit the longer edge to 512 without ever upscaling; small sources
		// keep their size and get padded instead.
		fmt.Sprintf("scale='min(%d,iw)':'min(%d,ih)':force_original_aspect_ratio=decrease:flags=lanczos", StickerEdge, StickerEdge),
		"setsar=1",
		"crop=trunc(iw/2)*2:trunc(ih/2)*2",
		"format=rgba",
		fmt.Sprintf("pad=%d:%d:-1:-1:color=#00000000", StickerEdge, StickerEdge),
	}
	if fps > 0 {
		stages = append(stages, fmt.Sprintf("fps=%d", fps))
	}
	return strings.Join(stages, ",")
}

// BuildVideoFilter is the simplified chain for the mp4 fallback: same scale,
// SAR and even-dimension stages, an explicit output frame rate, but no alpha
// or pad since video containers carry no transparency.
func BuildVideoFilter(fps int) string {
	stages := []string{
		fmt.Sprintf("scale='min(%d,iw)':'min(%d,ih)':force_original_aspect_ratio=decrease:flags=lanczos", StickerEdge, StickerEdge),
		"setsar=1",
		"crop=trunc(iw/2)*2:trunc(ih/2)*2",
		fmt.Sprintf("fps=%d", fps),
	}
	return strings.Join(stages, ",")
}
