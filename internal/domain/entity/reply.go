package entity

// RenderMode tells the transport adapter how to surface a reply. The core
// only expresses intent; whether in-place editing is possible depends on the
// chat surface.
type RenderMode string

const (
	RenderSendNew     RenderMode = "send_new"
	RenderReplaceLast RenderMode = "replace_last"
)

// Button is one pressable option attached to a reply
type Button struct {
	Label      string `json:"label"`
	CallbackID string `json:"callbackId"`
}

// Reply is a single outbound render instruction produced by the conversation
// engine. A handler may return zero or more of these.
type Reply struct {
	Text    string     `json:"text"`
	Buttons [][]Button `json:"buttons,omitempty"`
	Mode    RenderMode `json:"mode"`
}

// NewReply builds a plain text reply sent as a new message
func NewReply(text string) Reply {
	return Reply{Text: text, Mode: RenderSendNew}
}

// NewReplyWithButtons builds a reply carrying inline button rows
func NewReplyWithButtons(text string, buttons [][]Button) Reply {
	return Reply{Text: text, Buttons: buttons, Mode: RenderSendNew}
}
