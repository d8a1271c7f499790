package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"simhire-backend/internal/domain"

	"golang.org/x/sync/errgroup"
)

// ErrInvalidStage is returned before any request is sent when the stage is not in the vocabulary.
var ErrInvalidStage = errors.New("invalid stage")

// ErrInvalidApplication is returned before any request is sent when the application id is empty.
var ErrInvalidApplication = errors.New("invalid application")

// StatusWriter sends a status change to the backend of record.
type StatusWriter interface {
	UpdateStatus(ctx context.Context, applicationID string, change domain.StatusChange) error
}

// Refresher re-reads a collection from the backend after a write.
type Refresher interface {
	Invalidate()
	Refresh(ctx context.Context) (bool, error)
}

// BulkError is the single failure reported for a bulk transition in which at least one
// request failed. Requests that succeeded are not rolled back.
type BulkError struct {
	Stage  domain.Stage
	Failed map[string]error
	Total  int
}

func (e *BulkError) Error() string {
	return fmt.Sprintf("failed to update %d of %d applications to %q", len(e.Failed), e.Total, e.Stage)
}

// Transitioner validates and sends stage changes, then refreshes the affected collection once.
type Transitioner struct {
	vocab   domain.Vocabulary
	writer  StatusWriter
	refresh Refresher
}

// NewTransitioner binds a vocabulary, a writer and the collection to refresh after writes.
// refresh may be nil when no collection is cached.
func NewTransitioner(vocab domain.Vocabulary, writer StatusWriter, refresh Refresher) *Transitioner {
	return &Transitioner{vocab: vocab, writer: writer, refresh: refresh}
}

func (t *Transitioner) LabelOf(s domain.Stage) string {
	return t.vocab.LabelOf(s)
}

func (t *Transitioner) ColorOf(s domain.Stage) string {
	return t.vocab.ColorOf(s)
}

// RequestTransition moves one application to stage. A change to the current stage is sent as is.
func (t *Transitioner) RequestTransition(ctx context.Context, applicationID string, stage domain.Stage, note string) error {
	if strings.TrimSpace(applicationID) == "" {
		return fmt.Errorf("%w: application id is required", ErrInvalidApplication)
	}
	if !t.vocab.Contains(stage) {
		return fmt.Errorf("%w: %q is not a %s stage (%s)", ErrInvalidStage, stage, t.vocab.Kind(), t.vocab.String())
	}

	if err := t.writer.UpdateStatus(ctx, applicationID, domain.StatusChange{Stage: stage, Note: note}); err != nil {
		return err
	}
	return t.settle(ctx)
}

// BulkResult lists which applications were updated.
type BulkResult struct {
	Stage     domain.Stage `json:"stage"`
	Succeeded []string     `json:"succeeded"`
	Failed    []string     `json:"failed"`
}

// BulkTransition sends one request per id concurrently and waits for all of them.
// The collection is refreshed once afterwards whatever the outcome. When any request
// failed a *BulkError is returned alongside the per-item result, joined with the
// refresh error when the re-read failed too.
func (t *Transitioner) BulkTransition(ctx context.Context, ids []string, stage domain.Stage) (*BulkResult, error) {
	if !t.vocab.Contains(stage) {
		return nil, fmt.Errorf("%w: %q is not a %s stage (%s)", ErrInvalidStage, stage, t.vocab.Kind(), t.vocab.String())
	}

	var (
		mu     sync.Mutex
		failed = make(map[string]error)
		g      errgroup.Group
	)
	ok := make([]bool, len(ids))
	for i, id := range ids {
		g.Go(func() error {
			err := t.writer.UpdateStatus(ctx, id, domain.StatusChange{Stage: stage})
			if err != nil {
				mu.Lock()
				failed[id] = err
				mu.Unlock()
				return nil
			}
			ok[i] = true
			return nil
		})
	}
	_ = g.Wait()

	result := &BulkResult{Stage: stage, Succeeded: []string{}, Failed: []string{}}
	for i, id := range ids {
		if ok[i] {
			result.Succeeded = append(result.Succeeded, id)
		} else {
			result.Failed = append(result.Failed, id)
		}
	}

	settleErr := t.settle(ctx)
	if len(failed) > 0 {
		bulkErr := &BulkError{Stage: stage, Failed: failed, Total: len(ids)}
		if settleErr != nil {
			return result, errors.Join(bulkErr, settleErr)
		}
		return result, bulkErr
	}
	return result, settleErr
}

// settle invalidates and re-reads the bound collection.
func (t *Transitioner) settle(ctx context.Context) error {
	if t.refresh == nil {
		return nil
	}
	t.refresh.Invalidate()
	if _, err := t.refresh.Refresh(ctx); err != nil {
		return fmt.Errorf("refresh after write: %w", err)
	}
	return nil
}
