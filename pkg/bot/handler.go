package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"go.mau.fi/whatsmeow/types/events"

	"stikerbot/pkg/activity"
	"stikerbot/pkg/config"
	"stikerbot/pkg/sticker"
)

const (
	defaultActiveLimit = 10
	maxActiveLimit     = 50
)

// Handler routes inbound messages: logs group activity and dispatches
// prefix commands.
type Handler struct {
	cfg       *config.Config
	msgr      Messenger
	converter Converter
	activity  ActivityLog
	log       zerolog.Logger

	// Group names rarely change; cache them so activity logging does not
	// hit the network per message.
	groupNames   map[string]string
	groupNamesMu sync.RWMutex
}

func NewHandler(cfg *config.Config, msgr Messenger, conv Converter, act ActivityLog, log zerolog.Logger) *Handler {
	return &Handler{
		cfg:        cfg,
		msgr:       msgr,
		converter:  conv,
		activity:   act,
		log:        log,
		groupNames: make(map[string]string),
	}
}

// HandleMessage is the per-event entry point. It runs the whole pipeline for
// one event and never returns an error; failures end as replies or log lines.
func (h *Handler) HandleMessage(ctx context.Context, evt *events.Message) {
	text := messageText(evt)

	if !evt.Info.IsFromMe && evt.Info.IsGroup {
		h.recordActivity(evt, text)
	}

	if !strings.HasPrefix(text, h.cfg.Prefix) {
		return
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return
	}
	cmd := strings.ToLower(strings.TrimPrefix(fields[0], h.cfg.Prefix))
	args := fields[1:]

	switch cmd {
	case "stiker", "sticker":
		meta := sticker.ParseMetaWith(strings.Join(args, " "), sticker.Meta{
			Author: h.cfg.Tuning.Sticker.Author,
			Pack:   h.cfg.Tuning.Sticker.Pack,
		})
		h.converter.Convert(ctx, evt, meta)
	case "tagall":
		h.tagAll(ctx, evt, args)
	case "aktif":
		h.topActive(ctx, evt, args)
	case "admindebug":
		h.adminDebug(ctx, evt)
	}
}

func (h *Handler) recordActivity(evt *events.Message, text string) {
	rec := activity.Record{
		Timestamp:   evt.Info.Timestamp,
		GroupID:     evt.Info.Chat.String(),
		GroupName:   h.groupName(evt),
		ContactID:   evt.Info.Sender.String(),
		ContactName: evt.Info.PushName,
		PhoneLast4:  phoneLast4(evt.Info.Sender.User),
		Message:     text,
	}
	if err := h.activity.Append(rec); err != nil {
		h.log.Warn().Err(err).Msg("activity log append failed")
	}
}

// tagAll mentions every participant of the group, with an optional header
// text after the command word.
func (h *Handler) tagAll(ctx context.Context, evt *events.Message, args []string) {
	if !evt.Info.IsGroup {
		h.reply(ctx, evt, "This command only works in groups.")
		return
	}

	header := strings.Join(args, " ")
	if header == "" {
		header = "👋"
	}

	info, err := h.msgr.GroupInfo(evt.Info.Chat)
	if err != nil {
		h.log.Warn().Err(err).Msg("group info fetch failed")
		h.reply(ctx, evt, "Could not fetch the member list, try again.")
		return
	}

	var b strings.Builder
	b.WriteString(header)
	mentions := make([]string, 0, len(info.Participants))
	for _, p := range info.Participants {
		mentions = append(mentions, p.JID.String())
		b.WriteString("\n@")
		b.WriteString(p.JID.User)
	}

	if err := h.msgr.SendText(ctx, evt.Info.Chat, b.String(), mentions); err != nil {
		h.log.Error().Err(err).Msg("tagall send failed")
	}
}

// topActive replies with the most active members of the group according to
// the activity log.
func (h *Handler) topActive(ctx context.Context, evt *events.Message, args []string) {
	if !evt.Info.IsGroup {
		h.reply(ctx, evt, "This command only works in groups.")
		return
	}

	limit := defaultActiveLimit
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			limit = n
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxActiveLimit {
		limit = maxActiveLimit
	}

	ranking, err := h.activity.TopMembers(evt.Info.Chat.String(), limit)
	if err != nil {
		h.log.Warn().Err(err).Msg("activity ranking failed")
		h.reply(ctx, evt, "Could not read the activity log.")
		return
	}
	if len(ranking) == 0 {
		h.reply(ctx, evt, "No activity recorded for this group yet.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Top %d most active members:\n", limit)
	for i, mc := range ranking {
		label := mc.Name
		if label == "" {
			label = strings.TrimSuffix(mc.ContactID, "@s.whatsapp.net")
		}
		if mc.Last4 != "" {
			label += " (#" + mc.Last4 + ")"
		}
		fmt.Fprintf(&b, "%d. %s: %d messages\n", i+1, label, mc.Count)
	}
	h.reply(ctx, evt, strings.TrimRight(b.String(), "\n"))
}

// adminDebug dumps the admin flags of the sender and the bot.
func (h *Handler) adminDebug(ctx context.Context, evt *events.Message) {
	if !evt.Info.IsGroup {
		h.reply(ctx, evt, "This command only works in groups.")
		return
	}

	info, err := h.msgr.GroupInfo(evt.Info.Chat)
	if err != nil {
		h.log.Warn().Err(err).Msg("group info fetch failed")
		h.reply(ctx, evt, "Could not fetch the member list, try again.")
		return
	}

	sender := findParticipant(info, evt.Info.Sender)
	self := findParticipant(info, h.msgr.BotJID())

	h.reply(ctx, evt, fmt.Sprintf(
		"🔧 Admin debug\nSender: admin=%t owner=%t\n%s: admin=%t owner=%t",
		isAdmin(sender), isOwner(sender),
		h.cfg.BotName, isAdmin(self), isOwner(self),
	))
}

func (h *Handler) groupName(evt *events.Message) string {
	key := evt.Info.Chat.String()

	h.groupNamesMu.RLock()
	name, ok := h.groupNames[key]
	h.groupNamesMu.RUnlock()
	if ok {
		return name
	}

	info, err := h.msgr.GroupInfo(evt.Info.Chat)
	if err != nil {
		h.log.Debug().Err(err).Msg("group name lookup failed")
		return ""
	}

	h.groupNamesMu.Lock()
	h.groupNames[key] = info.Name
	h.groupNamesMu.Unlock()
	return info.Name
}

func (h *Handler) reply(ctx context.Context, evt *events.Message, text string) {
	if err := h.msgr.Reply(ctx, evt, text); err != nil {
		h.log.Error().Err(err).Msg("failed to send reply")
	}
}

// messageText extracts the visible text of a message. Media messages carry
// their command as a caption, so an image sent with "!stiker" dispatches the
// same way a plain text message does.
func messageText(evt *events.Message) string {
	if t := evt.Message.GetConversation(); t != "" {
		return t
	}
	if t := evt.Message.GetExtendedTextMessage().GetText(); t != "" {
		return t
	}
	if t := evt.Message.GetImageMessage().GetCaption(); t != "" {
		return t
	}
	if t := evt.Message.GetVideoMessage().GetCaption(); t != "" {
		return t
	}
	return evt.Message.GetDocumentMessage().GetCaption()
}

func phoneLast4(user string) string {
	if len(user) <= 4 {
		return user
	}
	return user[len(user)-4:]
}
