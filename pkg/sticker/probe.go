package sticker

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SourceDuration asks ffprobe how long the given media runs. It is used only
// to decide whether to warn the user that their clip was trimmed, so callers
// treat errors as "unknown" rather than failures.
func (e *Encoder) SourceDuration(ctx context.Context, buf []byte) (time.Duration, error) {
	in, err := e.writeInput(buf)
	if err != nil {
		return 0, err
	}
	defer e.cleanup(in)

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		in,
	}
	output, err := e.runner.Run(ctx, e.ffprobe, args...)
	if err != nil {
		return 0, fmt.Errorf("ffprobe: %w", err)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse ffprobe duration %q: %w", strings.TrimSpace(string(output)), err)
	}
	return time.Duration(seconds * float64(time.Second)), nil
}
