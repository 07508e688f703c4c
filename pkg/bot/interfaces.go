package bot

import (
	"context"

	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"

	"stikerbot/pkg/activity"
	"stikerbot/pkg/sticker"
)

// Messenger abstracts the transport client for testing; *wa.Client satisfies
// it.
type Messenger interface {
	Reply(ctx context.Context, evt *events.Message, text string) error
	SendText(ctx context.Context, chat types.JID, text string, mentions []string) error
	GroupInfo(jid types.JID) (*types.GroupInfo, error)
	BotJID() types.JID
}

// Converter abstracts the sticker pipeline.
type Converter interface {
	Convert(ctx context.Context, evt *events.Message, meta sticker.Meta)
}

// ActivityLog abstracts the CSV activity logger.
type ActivityLog interface {
	Append(r activity.Record) error
	TopMembers(groupID string, limit int) ([]activity.MemberCount, error)
}
