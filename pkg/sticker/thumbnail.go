package sticker

import (
	"bytes"
	"context"
	"fmt"
	"image/jpeg"

	"github.com/disintegration/imaging"
)

const thumbnailEdge = 72

// Thumbnail grabs the first frame of an encoded clip and shrinks it to the
// small JPEG preview video messages carry. Best effort: the fallback clip is
// still deliverable without one.
func (e *Encoder) Thumbnail(ctx context.Context, video []byte) ([]byte, error) {
	in, err := e.writeInput(video)
	if err != nil {
		return nil, err
	}
	out := e.scratchPath(".png")
	defer e.cleanup(in, out)

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-y", "-i", in,
		"-vframes", "1",
		out,
	}
	if output, err := e.runner.Run(ctx, e.ffmpeg, args...); err != nil {
		return nil, fmt.Errorf("extract frame: %w: %s", err, bytes.TrimSpace(output))
	}

	img, err := imaging.Open(out)
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	thumb := imaging.Fit(img, thumbnailEdge, thumbnailEdge, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: 75}); err != nil {
		return nil, fmt.Errorf("encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
