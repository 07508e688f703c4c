// Package wa wraps the whatsmeow client: pairing, the sqlite device store,
// attachment download and the message sending the rest of the bot needs.
// Nothing else in the repo talks to the protocol library directly.
package wa

import (
	"context"
	"fmt"
	"os"

	"github.com/mdp/qrterminal/v3"
	"github.com/rs/zerolog"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"
	"google.golang.org/protobuf/proto"

	_ "github.com/mattn/go-sqlite3"

	"stikerbot/pkg/sticker"
)

type Client struct {
	WA  *whatsmeow.Client
	log zerolog.Logger
}

// Connect opens (or creates) the device store and brings the session up.
// An unpaired store triggers the QR pairing flow on stdout; the call blocks
// until pairing completes or fails.
func Connect(ctx context.Context, storePath string, logger zerolog.Logger) (*Client, error) {
	dbLog := waLog.Zerolog(logger.With().Str("component", "wa-store").Logger())
	container, err := sqlstore.New(ctx, "sqlite3", fmt.Sprintf("file:%s?_foreign_keys=on", storePath), dbLog)
	if err != nil {
		return nil, fmt.Errorf("open device store: %w", err)
	}

	device, err := container.GetFirstDevice(ctx)
	if err != nil {
		return nil, fmt.Errorf("load device: %w", err)
	}

	cli := whatsmeow.NewClient(device, waLog.Zerolog(logger.With().Str("component", "wa-client").Logger()))

	if cli.Store.ID == nil {
		qrChan, err := cli.GetQRChannel(ctx)
		if err != nil {
			return nil, fmt.Errorf("qr channel: %w", err)
		}
		if err := cli.Connect(); err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}
		for evt := range qrChan {
			switch evt.Event {
			case "code":
				logger.Info().Msg("scan the QR code below with WhatsApp (Linked Devices)")
				qrterminal.GenerateHalfBlock(evt.Code, qrterminal.L, os.Stdout)
			case "success":
				logger.Info().Msg("paired")
			default:
				logger.Warn().Str("event", evt.Event).Msg("pairing event")
			}
		}
	} else {
		if err := cli.Connect(); err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}
	}

	return &Client{WA: cli, log: logger}, nil
}

func (c *Client) Close() {
	c.WA.Disconnect()
}

// OnMessage registers fn for inbound message events. Each event gets its own
// goroutine so slow conversions do not stall the event loop.
func (c *Client) OnMessage(fn func(evt *events.Message)) {
	c.WA.AddEventHandler(func(raw interface{}) {
		if evt, ok := raw.(*events.Message); ok {
			go fn(evt)
		}
	})
}

// Download satisfies sticker.Downloader.
func (c *Client) Download(ctx context.Context, msg whatsmeow.DownloadableMessage) ([]byte, error) {
	return c.WA.Download(ctx, msg)
}

// SendSticker uploads the webp and sends it as a sticker message.
func (c *Client) SendSticker(ctx context.Context, chat types.JID, s *sticker.Sticker) error {
	up, err := c.WA.Upload(ctx, s.Data, whatsmeow.MediaImage)
	if err != nil {
		return fmt.Errorf("upload sticker: %w", err)
	}
	msg := &waE2E.Message{StickerMessage: &waE2E.StickerMessage{
		URL:           proto.String(up.URL),
		DirectPath:    proto.String(up.DirectPath),
		MediaKey:      up.MediaKey,
		Mimetype:      proto.String("image/webp"),
		FileEncSHA256: up.FileEncSHA256,
		FileSHA256:    up.FileSHA256,
		FileLength:    proto.Uint64(up.FileLength),
		IsAnimated:    proto.Bool(s.Animated()),
	}}
	if _, err := c.WA.SendMessage(ctx, chat, msg); err != nil {
		return fmt.Errorf("send sticker: %w", err)
	}
	return nil
}

// SendLoopingVideo delivers the fallback clip as a video message flagged for
// gif-style looped playback.
func (c *Client) SendLoopingVideo(ctx context.Context, chat types.JID, s *sticker.Sticker, thumbnail []byte) error {
	up, err := c.WA.Upload(ctx, s.Data, whatsmeow.MediaVideo)
	if err != nil {
		return fmt.Errorf("upload video: %w", err)
	}
	msg := &waE2E.Message{VideoMessage: &waE2E.VideoMessage{
		URL:           proto.String(up.URL),
		DirectPath:    proto.String(up.DirectPath),
		MediaKey:      up.MediaKey,
		Mimetype:      proto.String("video/mp4"),
		FileEncSHA256: up.FileEncSHA256,
		FileSHA256:    up.FileSHA256,
		FileLength:    proto.Uint64(up.FileLength),
		GifPlayback:   proto.Bool(true),
		JPEGThumbnail: thumbnail,
	}}
	if _, err := c.WA.SendMessage(ctx, chat, msg); err != nil {
		return fmt.Errorf("send video: %w", err)
	}
	return nil
}

// Reply sends text quoting the given event.
func (c *Client) Reply(ctx context.Context, evt *events.Message, text string) error {
	msg := &waE2E.Message{ExtendedTextMessage: &waE2E.ExtendedTextMessage{
		Text: proto.String(text),
		ContextInfo: &waE2E.ContextInfo{
			StanzaID:      proto.String(evt.Info.ID),
			Participant:   proto.String(evt.Info.Sender.String()),
			QuotedMessage: evt.Message,
		},
	}}
	if _, err := c.WA.SendMessage(ctx, evt.Info.Chat, msg); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}

// SendText sends plain text, optionally mentioning the given JIDs.
func (c *Client) SendText(ctx context.Context, chat types.JID, text string, mentions []string) error {
	var msg *waE2E.Message
	if len(mentions) == 0 {
		msg = &waE2E.Message{Conversation: proto.String(text)}
	} else {
		msg = &waE2E.Message{ExtendedTextMessage: &waE2E.ExtendedTextMessage{
			Text:        proto.String(text),
			ContextInfo: &waE2E.ContextInfo{MentionedJID: mentions},
		}}
	}
	if _, err := c.WA.SendMessage(ctx, chat, msg); err != nil {
		return fmt.Errorf("send text: %w", err)
	}
	return nil
}

// GroupInfo fetches group metadata including the participant list.
func (c *Client) GroupInfo(jid types.JID) (*types.GroupInfo, error) {
	return c.WA.GetGroupInfo(context.Background(), jid)
}

// BotJID is the bot's own address, zero before pairing completes.
func (c *Client) BotJID() types.JID {
	if c.WA.Store.ID == nil {
		return types.JID{}
	}
	return *c.WA.Store.ID
}
