package models

import (
	"time"

	"github.com/google/uuid"
)

// ChannelScan is a snapshot of a submitted channel's public page, gathered by
// the worker to support the manual verification review. It never changes the
// channel's verification status by itself.
type ChannelScan struct {
	ID         uuid.UUID `json:"id"`
	ChannelID  uuid.UUID `json:"channel_id"`
	FetchedAt  time.Time `json:"fetched_at"`
	HTTPStatus int       `json:"http_status"`
	PageTitle  *string   `json:"page_title,omitempty"`
	Reachable  bool      `json:"reachable"`
}
