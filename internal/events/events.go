package events

import "context"

// Event types
const (
	EventCampaignStatusChanged = "campaign_status_changed"
	EventApplicationSubmitted  = "application_submitted"
	EventSelectionCompleted    = "selection_completed"
	EventChannelSubmitted      = "channel_submitted"
	EventVerificationUpdated   = "verification_updated"
)

// Streams
const (
	StreamCampaigns    = "events:campaigns"
	StreamVerification = "events:verification"
)

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
