// Package messaging describes the chat channel as seen by the dialogue engine:
// inbound text from a caller and the reply to deliver back.
package messaging

import "context"

// Inbound is one message from a caller.
type Inbound struct {
	RequestID    string
	CallerID     int64
	Text         string
	CallbackData string // set for inline-button presses instead of Text
}

// Input returns the text to dispatch: the message text, or the callback payload.
func (in Inbound) Input() string {
	if in.Text != "" {
		return in.Text
	}
	return in.CallbackData
}

// Outbound is the reply to a single Inbound.
type Outbound struct {
	CallerID int64
	Text     string
	// Options are selectable labels, rendered as a reply keyboard.
	Options []string
	// RemoveKeyboard hides any keyboard left from a previous reply. Ignored when Options is set.
	RemoveKeyboard bool
}

// Sender delivers outbound messages to the channel.
type Sender interface {
	Send(ctx context.Context, out Outbound) error
}
