package entity

import (
	"time"
)

// Update process status
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
	StatusSkipped    = "SKIPPED"
)

// Update kinds
const (
	UpdateCommand = "command"
	UpdateText    = "text"
	UpdateButton  = "button"
)

// Update represents one inbound interaction from the chat transport. Every
// update is persisted before processing so failures stay inspectable.
type Update struct {
	UpdateID      string    `bson:"updateId"`
	UserID        int64     `bson:"userId"`
	ChatID        int64     `bson:"chatId"`
	Kind          string    `bson:"kind"`
	Text          string    `bson:"text,omitempty"`
	CallbackID    string    `bson:"callbackId,omitempty"`
	ReceivedAt    time.Time `bson:"receivedAt"`
	ProcessStatus string    `bson:"processStatus"`
	ProcessedAt   time.Time `bson:"processedAt,omitempty"`
	ErrorDetail   string    `bson:"errorDetail,omitempty"`
}
