package service

import (
	"context"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/bigbull/event-ticket-api/internal/domain"
)

var scanJSON = jsoniter.Config{
	EscapeHTML:            true,
	DisallowUnknownFields: true,
}.Froze()

// ParseScanPayload decodes a QR code or manual entry body. Anything that is
// not exactly {"ticket_id": string, "email": string} is rejected.
func ParseScanPayload(raw []byte) (domain.ScanPayload, error) {
	var payload domain.ScanPayload
	if err := scanJSON.Unmarshal(raw, &payload); err != nil {
		return domain.ScanPayload{}, domain.NewValidationError("malformed scan payload: " + err.Error())
	}

	payload.TicketID = strings.TrimSpace(payload.TicketID)
	payload.Email = strings.TrimSpace(payload.Email)
	if payload.TicketID == "" || payload.Email == "" {
		return domain.ScanPayload{}, domain.NewValidationError("ticket_id and email are required")
	}

	return payload, nil
}

// EncodeScanPayload produces the content embedded in a ticket's QR code.
func EncodeScanPayload(ticket domain.Ticket) ([]byte, error) {
	return scanJSON.Marshal(domain.ScanPayload{
		TicketID: ticket.ID,
		Email:    ticket.Email,
	})
}

type Validator interface {
	Validate(ctx context.Context, payload domain.ScanPayload) (domain.ValidationOutcome, error)
}

type scanResult struct {
	outcome domain.ValidationOutcome
	err     error
}

type scanJob struct {
	ctx     context.Context
	payload domain.ScanPayload
	reply   chan scanResult
}

// ScanQueue serializes scan events from any number of producers onto a
// single consumer that drives the validator.
type ScanQueue struct {
	validator Validator
	jobs      chan scanJob
	done      chan struct{}
	closeOnce sync.Once
}

func NewScanQueue(validator Validator, size int) *ScanQueue {
	if size < 1 {
		size = 1
	}

	return &ScanQueue{
		validator: validator,
		jobs:      make(chan scanJob, size),
		done:      make(chan struct{}),
	}
}

// Run consumes jobs until ctx is cancelled or Close is called.
func (q *ScanQueue) Run(ctx context.Context) {
	zap.L().Info("scan queue consumer started", zap.Int("capacity", cap(q.jobs)))
	defer zap.L().Info("scan queue consumer stopped")

	for {
		select {
		case <-ctx.Done():
			q.Close()
			return
		case <-q.done:
			return
		case job := <-q.jobs:
			if err := job.ctx.Err(); err != nil {
				job.reply <- scanResult{err: err}
				continue
			}

			outcome, err := q.validator.Validate(job.ctx, job.payload)
			if err != nil {
				zap.L().Error("scan validation failed", zap.String("ticket_id", job.payload.TicketID), zap.Error(err))
			}
			job.reply <- scanResult{outcome: outcome, err: err}
		}
	}
}

func (q *ScanQueue) Close() {
	q.closeOnce.Do(func() {
		close(q.done)
	})
}

func (q *ScanQueue) Submit(ctx context.Context, payload domain.ScanPayload) (domain.ValidationOutcome, error) {
	job := scanJob{
		ctx:     ctx,
		payload: payload,
		reply:   make(chan scanResult, 1),
	}

	select {
	case <-q.done:
		return domain.ValidationOutcome{}, domain.ErrQueueClosed
	case <-ctx.Done():
		return domain.ValidationOutcome{}, ctx.Err()
	case q.jobs <- job:
	}

	select {
	case res := <-job.reply:
		return res.outcome, res.err
	case <-q.done:
		select {
		case res := <-job.reply:
			return res.outcome, res.err
		default:
			return domain.ValidationOutcome{}, domain.ErrQueueClosed
		}
	case <-ctx.Done():
		return domain.ValidationOutcome{}, ctx.Err()
	}
}

// SubmitRaw parses a decoded QR payload and queues it. Malformed payloads
// never reach the validator.
func (q *ScanQueue) SubmitRaw(ctx context.Context, raw []byte) (domain.ValidationOutcome, error) {
	payload, err := ParseScanPayload(raw)
	if err != nil {
		return domain.ValidationOutcome{}, err
	}

	return q.Submit(ctx, payload)
}
