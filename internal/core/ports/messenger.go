package ports

import (
	"context"
)

// Button is a single inline button; Action is an encoded action identifier.
type Button struct {
	Text   string
	Action string
}

// Keyboard is a grid of buttons, row by row.
type Keyboard [][]Button

// OutgoingMessage is a text message addressed to a chat.
type OutgoingMessage struct {
	ChatID   int64
	Text     string
	Keyboard Keyboard
}

// MessageRef points at a delivered message so it can be edited later.
type MessageRef struct {
	ChatID    int64
	MessageID int
}

// Messenger delivers messages to chat users.
// Every failure is returned as errs.DeliveryError.
type Messenger interface {
	Send(ctx context.Context, msg OutgoingMessage) (MessageRef, error)
	Edit(ctx context.Context, ref MessageRef, text string, keyboard Keyboard) error
}
