package sticker

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
)

// Reply texts, one per terminal pipeline state.
const (
	ReplyNoMedia        = "Reply to or attach an image, GIF, or video, then send the sticker command (optionally with author|pack)."
	ReplyFetchFailed    = "Failed to download media, try again."
	ReplyTooLarge       = "File too large, max ~15MB."
	ReplyEncodeFailed   = "Failed to create sticker."
	ReplyFallbackFailed = "Failed to create sticker, try shorter or smaller media."
	ReplyTruncated      = "Note: the clip ran past 6 seconds, so it was trimmed."
)

// Sender is the delivery side of the messaging collaborator.
type Sender interface {
	SendSticker(ctx context.Context, chat types.JID, s *Sticker) error
	SendLoopingVideo(ctx context.Context, chat types.JID, s *Sticker, thumbnail []byte) error
	Reply(ctx context.Context, evt *events.Message, text string) error
}

// Converter sequences locate -> fetch -> size check -> encode -> deliver,
// with the mp4 fallback for motion input when the webp path fails. Every
// failure collapses into exactly one user-visible reply; nothing propagates.
type Converter struct {
	fetcher *Fetcher
	encoder *Encoder
	sender  Sender
	log     zerolog.Logger
}

func NewConverter(dl Downloader, enc *Encoder, snd Sender, log zerolog.Logger) *Converter {
	return &Converter{
		fetcher: NewFetcher(dl),
		encoder: enc,
		sender:  snd,
		log:     log,
	}
}

func (c *Converter) Convert(ctx context.Context, evt *events.Message, meta Meta) {
	ref, ok := Locate(evt)
	if !ok {
		c.reply(ctx, evt, ReplyNoMedia)
		return
	}

	buf, err := c.fetcher.Fetch(ctx, ref)
	if err != nil {
		c.log.Warn().Err(err).Str("mime", ref.MimeType()).Msg("media fetch failed")
		c.reply(ctx, evt, ReplyFetchFailed)
		return
	}
	if len(buf) > MaxMediaBytes {
		c.reply(ctx, evt, ReplyTooLarge)
		return
	}

	motion := ref.IsMotion()
	result, err := c.encoder.Encode(ctx, buf, motion)
	if err != nil {
		if !motion {
			c.log.Error().Err(err).Msg("static encode failed")
			c.reply(ctx, evt, ReplyEncodeFailed)
			return
		}
		c.log.Warn().Err(err).Msg("webp encode failed, trying mp4 fallback")
		c.deliverFallback(ctx, evt, buf)
		return
	}

	if stamped, err := EmbedMeta(result.Data, meta); err == nil {
		result.Data = stamped
	} else {
		c.log.Warn().Err(err).Msg("could not embed sticker metadata")
	}

	if err := c.sender.SendSticker(ctx, evt.Info.Chat, result); err != nil {
		c.log.Error().Err(err).Msg("sticker delivery failed")
		c.reply(ctx, evt, ReplyEncodeFailed)
		return
	}
	if motion {
		c.notifyTruncated(ctx, evt, buf)
	}
}

// deliverFallback degrades from sticker to a looping clip. Terminal: a
// failure here gets the final error reply.
func (c *Converter) deliverFallback(ctx context.Context, evt *events.Message, buf []byte) {
	clip, err := c.encoder.EncodeFallback(ctx, buf)
	if err != nil {
		c.log.Error().Err(err).Msg("mp4 fallback failed")
		c.reply(ctx, evt, ReplyFallbackFailed)
		return
	}

	thumb, err := c.encoder.Thumbnail(ctx, clip.Data)
	if err != nil {
		c.log.Debug().Err(err).Msg("no thumbnail for fallback clip")
		thumb = nil
	}

	if err := c.sender.SendLoopingVideo(ctx, evt.Info.Chat, clip, thumb); err != nil {
		c.log.Error().Err(err).Msg("fallback delivery failed")
		c.reply(ctx, evt, ReplyFallbackFailed)
		return
	}
	c.notifyTruncated(ctx, evt, buf)
}

// notifyTruncated tells the user when their source ran past the duration
// cap. Probe failures fall back to saying nothing.
func (c *Converter) notifyTruncated(ctx context.Context, evt *events.Message, buf []byte) {
	dur, err := c.encoder.SourceDuration(ctx, buf)
	if err != nil {
		c.log.Debug().Err(err).Msg("duration probe failed")
		return
	}
	if dur > MaxDuration {
		c.reply(ctx, evt, ReplyTruncated)
	}
}

func (c *Converter) reply(ctx context.Context, evt *events.Message, text string) {
	if err := c.sender.Reply(ctx, evt, text); err != nil {
		c.log.Error().Err(err).Msg("failed to send reply")
	}
}

// Outcome classification helpers used by callers that only need the
// category, not the wrapped detail.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}

func IsEncodeError(err error) bool {
	var ee *EncodeError
	return errors.As(err, &ee)
}
