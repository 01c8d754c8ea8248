package ports

import (
	"context"
	"time"
)

type Message struct {
	Key    string    `json:"key"`
	Color  string    `json:"color,omitempty"`
	Text   string    `json:"text"`
	SentAt time.Time `json:"sent_at"`
}

type MessageSink interface {
	Emit(ctx context.Context, entityID int64, msg Message) error
}

type MessageInbox interface {
	Drain(ctx context.Context, entityID int64) ([]Message, error)
	Discard(ctx context.Context, entityID int64) error
}
