package models

import (
	"time"

	"github.com/google/uuid"
)

type Event[T any] struct {
	ID      string    `json:"id"`
	Type    string    `json:"type"`
	Version int       `json:"version"`
	Time    time.Time `json:"time"`

	TraceID string `json:"trace_id,omitempty"`

	Payload T `json:"payload"`
}

func NewEvent[T any](eventType, traceID string, payload T) Event[T] {
	return Event[T]{
		ID:      uuid.NewString(),
		Type:    eventType,
		Version: 1,
		Time:    time.Now().UTC(),
		TraceID: traceID,
		Payload: payload,
	}
}

type PageViewedPayload struct {
	Page      string `json:"page"`
	ProductID int64  `json:"product_id,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}
