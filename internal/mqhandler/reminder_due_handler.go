package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	mqcontracts "habitflow/contracts/mq"
	"habitflow/internal/notifier"
	"habitflow/pkg/metrics"
)

// DedupAcquirer gates a handler + key pair to a single processing.
type DedupAcquirer interface {
	AcquireOnce(ctx context.Context, handler, key string) bool
}

// DispatchRecorder persists the outcome of a dispatch attempt.
type DispatchRecorder interface {
	Insert(ctx context.Context, taskName, chatID string, statusCode int, dispatchErr string) error
}

// ReminderDueHandler consumes reminder.due events and submits the rendered
// message to the gateway. Dispatch failures are recorded and dropped: the
// habit mutation that scheduled the reminder is never affected, and there is
// no retry.
type ReminderDueHandler struct {
	sender  notifier.Notifier
	deduper DedupAcquirer
	log     DispatchRecorder
	logger  *zap.Logger
}

func NewReminderDueHandler(
	sender notifier.Notifier,
	deduper DedupAcquirer,
	log DispatchRecorder,
	logger *zap.Logger,
) *ReminderDueHandler {
	return &ReminderDueHandler{
		sender:  sender,
		deduper: deduper,
		log:     log,
		logger:  logger,
	}
}

func (h *ReminderDueHandler) HandleReminderDue(ctx context.Context, data json.RawMessage) error {
	start := time.Now()
	defer func() {
		metrics.RecordMQConsumeLatency(mqcontracts.RoutingKeyReminderDue, "reminder.due.q", time.Since(start))
	}()

	var payload mqcontracts.ReminderDuePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		// poison message; requeueing would loop forever
		h.logger.Error("Failed to decode reminder.due payload", zap.Error(err))
		return nil
	}

	if payload.ChatID == "" {
		// habit whose owner account was deleted; nothing to deliver to
		h.logger.Warn("Reminder has no recipient", zap.String("task_name", payload.TaskName))
		metrics.IncrementReminderDispatch("skipped")
		if logErr := h.log.Insert(ctx, payload.TaskName, "", 0, "no recipient"); logErr != nil {
			h.logger.Error("Failed to record dispatch outcome", zap.Error(logErr))
		}
		return nil
	}

	dedupKey := fmt.Sprintf("%s:%d", payload.TaskName, payload.FiredAt.Unix())
	if !h.deduper.AcquireOnce(ctx, "reminder.dispatch", dedupKey) {
		h.logger.Debug("Duplicate reminder.due skipped",
			zap.String("task_name", payload.TaskName),
		)
		metrics.IncrementReminderDispatch("duplicate")
		return nil
	}

	text := notifier.Message(payload.Action, payload.Time, payload.Place)

	status, err := h.sender.Send(ctx, payload.ChatID, text)
	if err != nil {
		h.logger.Warn("Reminder dispatch failed",
			zap.String("task_name", payload.TaskName),
			zap.Error(err),
		)
		metrics.IncrementReminderDispatch("failed")
		if logErr := h.log.Insert(ctx, payload.TaskName, payload.ChatID, 0, err.Error()); logErr != nil {
			h.logger.Error("Failed to record dispatch outcome", zap.Error(logErr))
		}
		return nil
	}

	outcome := "sent"
	if status < 200 || status > 299 {
		outcome = "failed"
		h.logger.Warn("Messaging gateway rejected reminder",
			zap.String("task_name", payload.TaskName),
			zap.Int("status_code", status),
		)
	}
	metrics.IncrementReminderDispatch(outcome)

	if logErr := h.log.Insert(ctx, payload.TaskName, payload.ChatID, status, ""); logErr != nil {
		h.logger.Error("Failed to record dispatch outcome", zap.Error(logErr))
	}

	return nil
}
