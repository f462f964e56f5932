package models

const (
	KindMessage = "Messages"

	FieldTitle     = "title"
	FieldAbstract  = "abstract"
	FieldActionURL = "actionurl"
	FieldCTA       = "cta"
	FieldTarget    = "target"
	FieldChannel   = "channel"
	FieldTime      = "time"

	MessageListKind = "ArcInfo#MessagesList"
)

// Message is an entry of the public info feed. Target lists the platforms it
// is shown on; an empty Channel means the stable channel.
type Message struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Abstract  string   `json:"abstract"`
	ActionURL string   `json:"actionurl"`
	CTA       string   `json:"cta"`
	Target    []string `json:"target"`
	Channel   string   `json:"channel,omitempty"`
	Time      int64    `json:"time"`
}

// MessageList is one page of the feed, newest first. Since and Until are the
// highest and lowest message times on the page.
type MessageList struct {
	Kind   string     `json:"kind"`
	Data   []*Message `json:"data"`
	Since  int64      `json:"since,omitempty"`
	Until  int64      `json:"until,omitempty"`
	Cursor string     `json:"cursor,omitempty"`
}

// NewMessageList computes the page bounds from messages.
func NewMessageList(messages []*Message, cursor string) *MessageList {
	if messages == nil {
		messages = []*Message{}
	}
	list := &MessageList{Kind: MessageListKind, Data: messages, Cursor: cursor}
	for _, m := range messages {
		if list.Since == 0 || m.Time > list.Since {
			list.Since = m.Time
		}
		if list.Until == 0 || m.Time < list.Until {
			list.Until = m.Time
		}
	}
	return list
}
