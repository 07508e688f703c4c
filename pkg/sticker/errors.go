package sticker

import (
	"errors"
	"fmt"
	"strings"
)

// MaxMediaBytes is the largest attachment the pipeline will accept. The check
// happens right after download, before anything touches the filesystem.
const MaxMediaBytes = 15 * 1024 * 1024

var (
	// ErrNoMedia means neither the message nor its quoted message carried a
	// convertible attachment.
	ErrNoMedia = errors.New("no media to convert")
	// ErrTooLarge means the downloaded attachment exceeded MaxMediaBytes.
	ErrTooLarge = errors.New("media exceeds size limit")
)

// FetchError wraps a failure to download or fully drain the attachment stream.
type FetchError struct {
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch media: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// EncodeError carries the codec invocation failure along with whatever the
// process wrote to its combined output, which is usually the only clue to
// what went wrong.
type EncodeError struct {
	Stage  string // "webp" or "mp4"
	Output string
	Err    error
}

func (e *EncodeError) Error() string {
	out := strings.TrimSpace(e.Output)
	if out == "" {
		return fmt.Sprintf("encode %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("encode %s: %v: %s", e.Stage, e.Err, out)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}
