package sticker

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stikerbot/pkg/config"
)

const (
	// AnimatedFPS is the frame rate animated stickers are normalized to.
	AnimatedFPS = 15
	// MaxDuration caps animated output; longer sources are truncated.
	MaxDuration = 6 * time.Second

	qualityStatic   = "60"
	qualityAnimated = "65"
)

// Format of an encoded result.
type Format int

const (
	FormatWebP Format = iota
	FormatWebPAnimated
	FormatMP4
)

// Sticker is the transient encode result handed to the sender.
type Sticker struct {
	Format Format
	Data   []byte
}

func (s *Sticker) Animated() bool {
	return s.Format == FormatWebPAnimated
}

// CommandRunner abstracts subprocess execution so encoding is testable
// without ffmpeg installed.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// execRunner runs the real process and returns its combined output.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Encoder owns the ffmpeg/ffprobe invocations and the scratch files around
// them. It is stateless across calls and safe for concurrent use.
type Encoder struct {
	runner    CommandRunner
	ffmpeg    string
	ffprobe   string
	tempDir   string
	qStatic   string
	qAnimated string
	log       zerolog.Logger
}

func NewEncoder(cfg *config.Config, log zerolog.Logger) *Encoder {
	return NewEncoderWithRunner(cfg, log, execRunner{})
}

func NewEncoderWithRunner(cfg *config.Config, log zerolog.Logger, runner CommandRunner) *Encoder {
	return &Encoder{
		runner:    runner,
		ffmpeg:    cfg.FFmpegPath,
		ffprobe:   cfg.FFprobePath,
		tempDir:   cfg.TempDir,
		qStatic:   qualityArg(cfg.Tuning.Encoder.StaticQuality, qualityStatic),
		qAnimated: qualityArg(cfg.Tuning.Encoder.AnimatedQuality, qualityAnimated),
		log:       log,
	}
}

func qualityArg(v int, fallback string) string {
	if v > 0 {
		return strconv.Itoa(v)
	}
	return fallback
}

// Encode runs the primary path: buffer -> scratch file -> ffmpeg -> webp
// buffer. Animated output is normalized to 15 fps, loops forever and is
// truncated at 6 seconds. Scratch files are removed on every exit path.
func (e *Encoder) Encode(ctx context.Context, buf []byte, motion bool) (*Sticker, error) {
	in, err := e.writeInput(buf)
	if err != nil {
		return nil, &EncodeError{Stage: "webp", Err: err}
	}
	out := e.scratchPath(".webp")
	defer e.cleanup(in, out)

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-y", "-i", in,
	}
	if motion {
		args = append(args, "-vf", BuildFilter(AnimatedFPS))
	} else {
		args = append(args, "-vf", BuildFilter(0))
	}
	args = append(args, "-c:v", "libwebp", "-lossless", "0")
	if motion {
		args = append(args, "-q:v", e.qAnimated, "-loop", "0", "-t", durationArg())
	} else {
		args = append(args, "-q:v", e.qStatic)
	}
	args = append(args, "-an", "-threads", "1", out)

	output, err := e.runner.Run(ctx, e.ffmpeg, args...)
	if err != nil {
		return nil, &EncodeError{Stage: "webp", Output: string(output), Err: err}
	}

	data, err := e.readOutput(out)
	if err != nil {
		return nil, &EncodeError{Stage: "webp", Output: string(output), Err: err}
	}

	format := FormatWebP
	if motion {
		format = FormatWebPAnimated
	}
	return &Sticker{Format: format, Data: data}, nil
}

// EncodeFallback re-encodes motion input to an H.264 clip when the webp path
// fails. There is no further fallback behind it.
func (e *Encoder) EncodeFallback(ctx context.Context, buf []byte) (*Sticker, error) {
	in, err := e.writeInput(buf)
	if err != nil {
		return nil, &EncodeError{Stage: "mp4", Err: err}
	}
	out := e.scratchPath(".mp4")
	defer e.cleanup(in, out)

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-y", "-i", in,
		"-vf", BuildVideoFilter(AnimatedFPS),
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		"-an",
		"-t", durationArg(),
		"-movflags", "+faststart",
		"-threads", "1",
		out,
	}

	output, err := e.runner.Run(ctx, e.ffmpeg, args...)
	if err != nil {
		return nil, &EncodeError{Stage: "mp4", Output: string(output), Err: err}
	}

	data, err := e.readOutput(out)
	if err != nil {
		return nil, &EncodeError{Stage: "mp4", Output: string(output), Err: err}
	}
	return &Sticker{Format: FormatMP4, Data: data}, nil
}

func (e *Encoder) writeInput(buf []byte) (string, error) {
	path := e.scratchPath(".bin")
	if err := os.WriteFile(path, buf, 0o600); err != nil {
		e.cleanup(path)
		return "", fmt.Errorf("write scratch input: %w", err)
	}
	return path, nil
}

func (e *Encoder) readOutput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read codec output: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("codec produced empty output")
	}
	return data, nil
}

// scratchPath builds a collision-safe temp file name; encodes can run
// concurrently for different events.
func (e *Encoder) scratchPath(ext string) string {
	name := fmt.Sprintf("stiker-%d-%s%s", time.Now().UnixNano(), uuid.NewString()[:8], ext)
	return filepath.Join(e.tempDir, name)
}

// cleanup is best effort: a leftover scratch file never turns a successful
// conversion into a failure.
func (e *Encoder) cleanup(paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			e.log.Debug().Err(err).Str("path", p).Msg("failed to remove scratch file")
		}
	}
}

func durationArg() string {
	return fmt.Sprintf("%d", int(MaxDuration/time.Second))
}
