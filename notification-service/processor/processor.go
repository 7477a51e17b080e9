package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/arunvm123/bookingportal/notification-service/model"
	"github.com/segmentio/kafka-go"
)

// Reader is the part of *kafka.Reader the processor uses. Its methods are
// safe to call from several workers.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Sender delivers a rendered email.
type Sender interface {
	Send(ctx context.Context, email *model.EmailTemplate) error
}

const fetchBackoff = time.Second

type Processor struct {
	reader  Reader
	sender  Sender
	from    string
	workers int
	logger  *slog.Logger

	// Metrics
	processed atomic.Int64
	failed    atomic.Int64
}

func NewProcessor(reader Reader, sender Sender, from string, workers int, logger *slog.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	return &Processor{
		reader:  reader,
		sender:  sender,
		from:    from,
		workers: workers,
		logger:  logger,
	}
}

// Run consumes notifications until ctx is cancelled. Every fetched message
// is committed once handled, including ones that could not be processed.
func (p *Processor) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p.work(ctx, p.logger.With("worker", id))
		}(i)
	}
	wg.Wait()
}

func (p *Processor) work(ctx context.Context, logger *slog.Logger) {
	for {
		msg, err := p.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("error reading message", "error", err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(fetchBackoff):
			}
			continue
		}

		if err := p.Handle(ctx, msg); err != nil {
			p.failed.Add(1)
			logger.Error("error processing notification", "partition", msg.Partition, "offset", msg.Offset, "error", err)
		} else {
			p.processed.Add(1)
		}

		if err := p.reader.CommitMessages(ctx, msg); err != nil && ctx.Err() == nil {
			logger.Error("failed to commit message", "offset", msg.Offset, "error", err)
		}
	}
}

// Handle decodes one message and sends the email it describes. Unknown
// notification types are skipped.
func (p *Processor) Handle(ctx context.Context, msg kafka.Message) error {
	var req model.NotificationRequest
	if err := json.Unmarshal(msg.Value, &req); err != nil {
		return fmt.Errorf("failed to unmarshal notification request: %w", err)
	}

	email, ok := req.Render(p.from)
	if !ok {
		p.logger.Warn("unknown notification type", "type", req.Type, "id", req.ID)
		return nil
	}

	if err := p.sender.Send(ctx, email); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	p.logger.Info("notification sent", "type", req.Type, "to", req.RecipientEmail, "booking_id", req.BookingData.BookingID)
	return nil
}

func (p *Processor) Processed() int64 {
	return p.processed.Load()
}

func (p *Processor) Failed() int64 {
	return p.failed.Load()
}
