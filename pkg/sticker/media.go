package sticker

import (
	"strings"

	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types/events"
)

// MediaKind tags the resolved attachment node.
type MediaKind int

const (
	KindImage MediaKind = iota
	KindVideo
	KindDocument
)

// MediaRef is the single place attachment shape-sniffing happens. It is
// resolved once by Locate and carries the concrete protocol node plus its
// classification, so downstream stages never re-inspect the message.
type MediaRef struct {
	Kind  MediaKind
	image *waE2E.ImageMessage
	video *waE2E.VideoMessage
	doc   *waE2E.DocumentMessage
}

// Downloadable returns the node to hand to the transport's downloader.
func (r *MediaRef) Downloadable() whatsmeow.DownloadableMessage {
	switch r.Kind {
	case KindImage:
		return r.image
	case KindVideo:
		return r.video
	default:
		return r.doc
	}
}

// MimeType is the declared mime type of the matched node.
func (r *MediaRef) MimeType() string {
	switch r.Kind {
	case KindImage:
		return r.image.GetMimetype()
	case KindVideo:
		return r.video.GetMimetype()
	default:
		return r.doc.GetMimetype()
	}
}

// IsMotion reports whether the attachment needs the animated pipeline.
// GIFs ride in as video-mime documents on this transport, so gif and video
// mimes are deliberately conflated.
func (r *MediaRef) IsMotion() bool {
	if r.Kind == KindVideo {
		return true
	}
	mime := strings.ToLower(r.MimeType())
	return strings.Contains(mime, "video") || strings.Contains(mime, "gif")
}

// Locate resolves the conversion target for an inbound event. A quoted
// message wins over the event's own payload; within either, image beats
// video beats document-with-media-mime. Returns false when nothing matches.
func Locate(evt *events.Message) (*MediaRef, bool) {
	if quoted := quotedMessage(evt.Message); quoted != nil {
		if ref, ok := locateIn(quoted); ok {
			return ref, true
		}
	}
	return locateIn(evt.Message)
}

func locateIn(msg *waE2E.Message) (*MediaRef, bool) {
	if msg == nil {
		return nil, false
	}
	if img := msg.GetImageMessage(); img != nil {
		return &MediaRef{Kind: KindImage, image: img}, true
	}
	if vid := msg.GetVideoMessage(); vid != nil {
		return &MediaRef{Kind: KindVideo, video: vid}, true
	}
	if doc := msg.GetDocumentMessage(); doc != nil && hasMediaMime(doc.GetMimetype()) {
		return &MediaRef{Kind: KindDocument, doc: doc}, true
	}
	return nil, false
}

func hasMediaMime(mime string) bool {
	mime = strings.ToLower(mime)
	return strings.Contains(mime, "image") ||
		strings.Contains(mime, "video") ||
		strings.Contains(mime, "gif")
}

func quotedMessage(msg *waE2E.Message) *waE2E.Message {
	if msg == nil {
		return nil
	}
	if ext := msg.GetExtendedTextMessage(); ext != nil {
		return ext.GetContextInfo().GetQuotedMessage()
	}
	return nil
}
