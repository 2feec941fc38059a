package chanscan

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/campmatch/backend/internal/events"
	"github.com/campmatch/backend/internal/models"
)

type ChannelSource interface {
	GetChannelByID(ctx context.Context, id uuid.UUID) (*models.Channel, error)
	ListPendingChannels(ctx context.Context, limit int) ([]models.Channel, error)
}

type ScanSink interface {
	Create(ctx context.Context, s *models.ChannelScan) error
}

// Runner drives the scans: it reacts to freshly submitted channels and also
// sweeps everything still pending on an interval, so events lost while the
// worker was down are picked up eventually.
type Runner struct {
	scanner       *Scanner
	channels      ChannelSource
	scans         ScanSink
	subscriber    events.Subscriber
	clock         clockwork.Clock
	sweepInterval time.Duration
	log           *zap.Logger
}

func NewRunner(
	scanner *Scanner,
	channels ChannelSource,
	scans ScanSink,
	subscriber events.Subscriber,
	clock clockwork.Clock,
	sweepInterval time.Duration,
	log *zap.Logger,
) *Runner {
	return &Runner{
		scanner:       scanner,
		channels:      channels,
		scans:         scans,
		subscriber:    subscriber,
		clock:         clock,
		sweepInterval: sweepInterval,
		log:           log,
	}
}

func (r *Runner) Start(ctx context.Context) error {
	err := r.subscriber.Subscribe(ctx, events.StreamVerification, func(event events.Event) {
		if event.Type != events.EventChannelSubmitted {
			return
		}
		raw, _ := event.Payload["channel_id"].(string)
		id, err := uuid.Parse(raw)
		if err != nil {
			return
		}
		channel, err := r.channels.GetChannelByID(ctx, id)
		if err != nil {
			r.log.Warn("channel lookup failed", zap.String("channel_id", raw), zap.Error(err))
			return
		}
		r.scanChannel(ctx, channel)
	})
	if err != nil {
		return err
	}

	go r.sweepLoop(ctx)
	return nil
}

func (r *Runner) sweepLoop(ctx context.Context) {
	ticker := r.clock.NewTicker(r.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			r.Sweep(ctx)
		}
	}
}

// Sweep scans every channel still pending verification.
func (r *Runner) Sweep(ctx context.Context) {
	channels, err := r.channels.ListPendingChannels(ctx, 100)
	if err != nil {
		r.log.Error("pending channel sweep failed", zap.Error(err))
		return
	}
	for i := range channels {
		r.scanChannel(ctx, &channels[i])
	}
}

func (r *Runner) scanChannel(ctx context.Context, channel *models.Channel) {
	result, err := r.scanner.Fetch(ctx, channel.URL)
	if err != nil {
		r.log.Warn("channel scan failed",
			zap.String("channel_id", channel.ID.String()),
			zap.String("url", channel.URL),
			zap.Error(err))
		result = &ScanResult{}
	}

	scan := &models.ChannelScan{
		ChannelID:  channel.ID,
		FetchedAt:  r.clock.Now(),
		HTTPStatus: result.HTTPStatus,
		PageTitle:  result.PageTitle,
		Reachable:  result.Reachable,
	}
	if err := r.scans.Create(ctx, scan); err != nil {
		r.log.Error("scan store failed", zap.String("channel_id", channel.ID.String()), zap.Error(err))
		return
	}

	r.log.Info("channel scanned",
		zap.String("channel_id", channel.ID.String()),
		zap.Int("http_status", scan.HTTPStatus),
		zap.Bool("reachable", scan.Reachable))
}
