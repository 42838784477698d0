package apperr

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
)

// IsUserError reports whether err was caused by invalid input rather than
// a failure of the application
func IsUserError(err error) bool {
	return goerr.HasTag(err, model.ErrTagInvalidSelection) ||
		goerr.HasTag(err, model.ErrTagInvalidConfig) ||
		goerr.HasTag(err, model.ErrTagMissingColumn)
}

// Handle logs an error. Invalid input is logged as a warning.
func Handle(ctx context.Context, err error) {
	if err == nil {
		return
	}
	logger := ctxlog.From(ctx)
	if IsUserError(err) {
		logger.Warn("invalid input", "error", err)
		return
	}
	logger.Error("application error", "error", err)
}
