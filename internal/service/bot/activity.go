package bot

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/zhouzirui/campushelp/backend/internal/model/activity"
)

// OnActivity dispatches an inbound activity by type and returns the
// activities to send back. Message activities always yield exactly one
// reply; conversation updates yield one welcome per added member other than
// the bot; anything else yields none.
func (s *Service) OnActivity(ctx context.Context, in activity.Activity) []activity.Activity {
	switch in.Type {
	case activity.TypeMessage:
		reply := s.HandleMessage(ctx, in.Text)
		return []activity.Activity{s.replyTo(in, reply.Text)}
	case activity.TypeConversationUpdate:
		recipientID := ""
		if in.Recipient != nil {
			recipientID = in.Recipient.ID
		}
		welcomes := s.Welcome(ctx, in.MembersAdded, recipientID)
		out := make([]activity.Activity, 0, len(welcomes))
		for _, text := range welcomes {
			out = append(out, s.replyTo(in, text))
		}
		return out
	default:
		log.Printf("[bot] ignoring activity type=%q", in.Type)
		return nil
	}
}

func (s *Service) replyTo(in activity.Activity, text string) activity.Activity {
	from := &activity.ChannelAccount{ID: s.profile.ID, Name: s.profile.Name}
	if in.Recipient != nil && in.Recipient.ID != "" {
		from = &activity.ChannelAccount{ID: in.Recipient.ID, Name: in.Recipient.Name}
	}

	return activity.Activity{
		Type:         activity.TypeMessage,
		ID:           uuid.NewString(),
		Timestamp:    time.Now().UTC(),
		Text:         text,
		TextFormat:   activity.FormatMarkdown,
		From:         from,
		Recipient:    in.From,
		Conversation: in.Conversation,
		ReplyToID:    in.ID,
	}
}
