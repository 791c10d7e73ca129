package domain

import "time"

// InboundMessage is one text message received from a phone number.
type InboundMessage struct {
	Phone string
	Text  string
}

type ReplyStatus string

const (
	ReplyOK      ReplyStatus = "ok"
	ReplyPending ReplyStatus = "pending"
	ReplyError   ReplyStatus = "error"
	ReplyWarning ReplyStatus = "warning"
)

// Reply is returned for every inbound message.
type Reply struct {
	Status         ReplyStatus `json:"status"`
	Reply          string      `json:"reply"`
	Missing        []string    `json:"missing,omitempty"`
	ProfessionalID *int64      `json:"professional_id,omitempty"`
}

type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// Message is one entry of the conversation log.
type Message struct {
	ID             int64
	Direction      Direction
	RawSender      string
	ProfessionalID *int64
	Text           string
	CreatedAt      time.Time
}
