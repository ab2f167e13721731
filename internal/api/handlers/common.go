package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"five-whys-api-server/internal/errs"
	"five-whys-api-server/internal/mailer"
	"five-whys-api-server/internal/workflow"
)

// respondError maps the core error taxonomy onto HTTP statuses. Validation
// and authorization failures carry user-facing messages and must stay
// distinguishable from each other.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch errs.Kind(err) {
	case errs.ErrValidation:
		status = http.StatusBadRequest
	case errs.ErrAuthorization:
		status = http.StatusForbidden
	case errs.ErrNotFound:
		status = http.StatusNotFound
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// dispatchAll delivers notifications best-effort. The transition already
// persisted, so failures are collected into a warning for the response
// instead of failing the request.
func dispatchAll(ctx context.Context, d mailer.Dispatcher, notifications []workflow.Notification) string {
	var failures []string
	for _, n := range notifications {
		if err := d.Dispatch(ctx, n); err != nil {
			slog.Error("notification delivery failed",
				"kind", n.Kind.String(),
				"document", n.DocumentKey,
				"err", err,
			)
			failures = append(failures, err.Error())
		}
	}
	return strings.Join(failures, "; ")
}
