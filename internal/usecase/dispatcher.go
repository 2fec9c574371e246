package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/KlimZavadski/granica-bot/internal/domain/entity"
	"github.com/KlimZavadski/granica-bot/internal/domain/repository"
	"github.com/KlimZavadski/granica-bot/pkg/logger"
	"github.com/KlimZavadski/granica-bot/pkg/metrics"
)

// UpdateDispatcher persists inbound updates and routes them to the
// conversation engine. Updates from the same user are processed strictly one
// at a time, to completion, since progression depends on sequentially
// consistent session state; different users proceed concurrently.
type UpdateDispatcher struct {
	updateRepo   repository.UpdateRepository
	conversation *Conversation
	metrics      *metrics.Metrics
	logger       logger.Logger

	userLocks sync.Map // userID -> *sync.Mutex
}

// NewUpdateDispatcher creates a new update dispatcher
func NewUpdateDispatcher(
	updateRepo repository.UpdateRepository,
	conversation *Conversation,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *UpdateDispatcher {
	return &UpdateDispatcher{
		updateRepo:   updateRepo,
		conversation: conversation,
		metrics:      metrics,
		logger:       logger,
	}
}

func (d *UpdateDispatcher) lockFor(userID int64) *sync.Mutex {
	lock, _ := d.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// Dispatch logs the update, runs it through the conversation engine, and
// records the outcome on the log entry. The returned replies are the render
// instructions for the transport.
func (d *UpdateDispatcher) Dispatch(ctx context.Context, update *entity.Update) ([]entity.Reply, error) {
	if err := d.updateRepo.Save(ctx, update); err != nil {
		// The update is still processed; only the audit trail is degraded
		d.logger.Error("Failed to log update", "updateId", update.UpdateID, "error", err)
	}

	return d.process(ctx, update), nil
}

// RecoverPending re-dispatches updates whose processing never reached an
// outcome, e.g. after a crash between the log write and completion. The
// transport connection that carried them is gone, so their replies are
// dropped; only the session and journey effects matter here.
func (d *UpdateDispatcher) RecoverPending(ctx context.Context, limit int) (int, error) {
	updates, err := d.updateRepo.FindUnprocessed(ctx, limit)
	if err != nil {
		return 0, err
	}

	for _, update := range updates {
		d.logger.Info("Re-dispatching unprocessed update", "updateId", update.UpdateID, "userId", update.UserID)
		d.process(ctx, update)
	}
	return len(updates), nil
}

// process routes one logged update through the conversation engine and
// records its outcome
func (d *UpdateDispatcher) process(ctx context.Context, update *entity.Update) []entity.Reply {
	lock := d.lockFor(update.UserID)
	lock.Lock()
	defer lock.Unlock()

	started := time.Now()

	var replies []entity.Reply
	var err error

	switch update.Kind {
	case entity.UpdateCommand:
		replies, err = d.conversation.OnCommand(ctx, update.UserID, update.Text)
	case entity.UpdateText:
		replies, err = d.conversation.OnText(ctx, update.UserID, update.Text)
	case entity.UpdateButton:
		replies, err = d.conversation.OnButton(ctx, update.UserID, update.CallbackID)
	default:
		d.markProcessed(ctx, update.UpdateID, entity.StatusSkipped, fmt.Sprintf("unknown update kind %q", update.Kind))
		return nil
	}

	d.metrics.UpdateProcessingTime.Observe(time.Since(started).Seconds())

	switch {
	case err == nil:
		d.markProcessed(ctx, update.UpdateID, entity.StatusCompleted, "")
	case errors.Is(err, ErrDuplicateActiveJourney):
		// Refused by the duplicate-journey guard; handled, not failed
		d.markProcessed(ctx, update.UpdateID, entity.StatusSkipped, err.Error())
	default:
		d.metrics.ErrorsCount.WithLabelValues("dispatch").Inc()
		d.markProcessed(ctx, update.UpdateID, entity.StatusFailed, err.Error())
	}

	// The user-facing replies already carry the recovery message
	return replies
}

func (d *UpdateDispatcher) markProcessed(ctx context.Context, updateID, status, detail string) {
	if err := d.updateRepo.MarkProcessed(ctx, updateID, status, detail); err != nil {
		d.logger.Error("Failed to mark update processed", "updateId", updateID, "error", err)
	}
}
