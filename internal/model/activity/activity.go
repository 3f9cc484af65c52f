package activity

import "time"

// Activity types understood by the host.
const (
	TypeMessage            = "message"
	TypeConversationUpdate = "conversationUpdate"
)

// Text formats for outbound activities.
const (
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// ChannelAccount identifies a participant of a conversation.
type ChannelAccount struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

// ConversationAccount identifies a conversation.
type ConversationAccount struct {
	ID string `json:"id"`
}

// Activity is the envelope exchanged with the channel.
type Activity struct {
	Type         string               `json:"type"`
	ID           string               `json:"id,omitempty"`
	Timestamp    time.Time            `json:"timestamp,omitempty"`
	Text         string               `json:"text,omitempty"`
	TextFormat   string               `json:"textFormat,omitempty"`
	From         *ChannelAccount      `json:"from,omitempty"`
	Recipient    *ChannelAccount      `json:"recipient,omitempty"`
	Conversation *ConversationAccount `json:"conversation,omitempty"`
	MembersAdded []ChannelAccount     `json:"membersAdded,omitempty"`
	ReplyToID    string               `json:"replyToId,omitempty"`
}
