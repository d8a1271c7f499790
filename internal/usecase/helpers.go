package usecase

import (
	"context"
	"errors"

	"simhire-backend/internal/domain"
	"simhire-backend/pkg/apperror"
	"simhire-backend/pkg/logger"
)

// repoError maps a repository error to an AppError, using notFound for domain.ErrNotFound.
func repoError(err error, notFound string) error {
	if errors.Is(err, domain.ErrNotFound) {
		return apperror.NotFound(notFound)
	}
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return apperror.Internal(err)
}

// publish is best effort: failures are logged and never returned.
func publish(ctx context.Context, p domain.EventPublisher, event domain.Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, event); err != nil {
		logger.Log.WarnContext(ctx, "event not published", "subject", event.Subject, "entity_id", event.EntityID, "error", err)
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
