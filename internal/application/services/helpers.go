package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/DanielPopoola/claimpay/internal/application"
	"github.com/DanielPopoola/claimpay/internal/domain"
)

// classify passes business failures through untouched and wraps everything
// else as an infrastructure error.
func classify(err error) error {
	if _, ok := domain.AsDomainError(err); ok {
		return err
	}
	if _, ok := application.IsServiceError(err); ok {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		timeout := application.NewTimeoutError()
		timeout.Err = err
		return timeout
	}
	return application.NewInternalError(err)
}

// logFailure logs business rejections at warn and everything else at error.
func logFailure(logger *slog.Logger, msg string, err error, args ...any) {
	args = append(args, "category", application.CategorizeError(err), "error", err)
	if _, ok := domain.AsDomainError(err); ok {
		logger.Warn(msg, args...)
		return
	}
	logger.Error(msg, args...)
}
