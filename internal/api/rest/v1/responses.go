package v1

import (
	"errors"
	"net/http"

	"github.com/MGTheTrain/crypto-workbench/internal/domain/workbench"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// statusFor maps a service error to an HTTP status
func statusFor(err error) int {
	if errors.Is(err, workbench.ErrNoArtifact) {
		return http.StatusNotFound
	}
	switch workbench.Classify(err) {
	case workbench.CategoryValidation:
		return http.StatusBadRequest
	case workbench.CategoryEnvironment:
		return http.StatusServiceUnavailable
	default:
		return http.StatusUnprocessableEntity
	}
}

func respondError(ctx *gin.Context, err error) {
	ctx.JSON(statusFor(err), ErrorResponse{
		Message:  err.Error(),
		Category: string(workbench.Classify(err)),
	})
}

func respondBadRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Message:  message,
		Category: string(workbench.CategoryValidation),
	})
}

// resolveSession returns the caller's session ID, issuing a new one when the header is missing
// or not a UUID. The ID is echoed back in the response header.
func resolveSession(ctx *gin.Context, sessions workbench.SessionStore) string {
	sessionID := ctx.GetHeader(SessionHeader)
	if _, err := uuid.Parse(sessionID); err != nil {
		sessionID = sessions.NewSession()
	}
	ctx.Header(SessionHeader, sessionID)
	return sessionID
}
