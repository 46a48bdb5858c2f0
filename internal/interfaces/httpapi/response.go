package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/league-draft/internal/domain/draft"
	"github.com/riskibarqy/league-draft/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "league-draft"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

var (
	encodeFailureBody = []byte(`{"apiVersion":"2.0","error":{"code":500,"message":"internal server error","status":"INTERNAL"}}` + "\n")
	internalError     = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}
)

// writeJSON encodes into a pooled buffer first so an encoding failure can
// still produce a clean 500 instead of a truncated body.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	w.Header().Set("Content-Type", "application/json")
	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(encodeFailureBody)
		return
	}

	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, googleResponseEnvelope{APIVersion: googleAPIVersion, Data: data})
}

// writeError maps err onto the envelope. Internal failures never leak their
// message; they are recorded on the active span instead.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(ctx, err)
	message := err.Error()
	if mapped.HTTPStatus >= http.StatusInternalServerError {
		span := trace.SpanFromContext(ctx)
		span.RecordError(err)
		span.SetStatus(codes.Error, mapped.Reason)
		if mapped == internalError {
			message = "internal server error"
		}
	}
	writeErrorBody(w, mapped, message)
}

func writeInternalError(_ context.Context, w http.ResponseWriter) {
	writeErrorBody(w, internalError, "internal server error")
}

func writeErrorBody(w http.ResponseWriter, mapped mappedError, message string) {
	writeJSON(w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: message,
			Status:  mapped.Status,
			Errors:  []googleErrorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: message}},
		},
	})
}

type errorRule struct {
	target error
	mapped mappedError
}

// errorRules is checked in order; transient failures win over any domain
// kind they happen to wrap.
var errorRules = []errorRule{
	{usecase.ErrDependencyUnavailable, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
	{usecase.ErrUnauthorized, mappedError{http.StatusUnauthorized, "unauthorized", "UNAUTHENTICATED"}},
	{draft.ErrPermissionDenied, mappedError{http.StatusForbidden, "permissionDenied", "PERMISSION_DENIED"}},
	{draft.ErrSessionNotFound, mappedError{http.StatusNotFound, "sessionNotFound", "NOT_FOUND"}},
	{draft.ErrSlotNotFound, mappedError{http.StatusNotFound, "slotNotFound", "NOT_FOUND"}},
	{usecase.ErrNotFound, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{draft.ErrNotCurrentTurn, mappedError{http.StatusConflict, "notCurrentTurn", "ABORTED"}},
	{draft.ErrSlotAlreadyFilled, mappedError{http.StatusConflict, "slotAlreadyFilled", "ABORTED"}},
	{draft.ErrSubjectAlreadyAssigned, mappedError{http.StatusConflict, "subjectAlreadyAssigned", "ABORTED"}},
	{draft.ErrSlotAlreadyEmpty, mappedError{http.StatusConflict, "slotAlreadyEmpty", "ABORTED"}},
	{draft.ErrStatusConflict, mappedError{http.StatusConflict, "statusConflict", "ABORTED"}},
	{draft.ErrSlotsAlreadyInitialized, mappedError{http.StatusConflict, "slotsAlreadyInitialized", "ABORTED"}},
	{draft.ErrNothingToUndo, mappedError{http.StatusConflict, "nothingToUndo", "FAILED_PRECONDITION"}},
	{draft.ErrAlreadyStarted, mappedError{http.StatusConflict, "alreadyStarted", "FAILED_PRECONDITION"}},
	{draft.ErrSessionNotInProgress, mappedError{http.StatusConflict, "sessionNotInProgress", "FAILED_PRECONDITION"}},
	{draft.ErrSubjectNotEligible, mappedError{http.StatusBadRequest, "subjectNotEligible", "INVALID_ARGUMENT"}},
	{draft.ErrConfirmationRequired, mappedError{http.StatusBadRequest, "confirmationRequired", "INVALID_ARGUMENT"}},
	{draft.ErrInvalidOrder, mappedError{http.StatusBadRequest, "invalidOrder", "INVALID_ARGUMENT"}},
	{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
}

func mapError(_ context.Context, err error) mappedError {
	for _, rule := range errorRules {
		if errors.Is(err, rule.target) {
			return rule.mapped
		}
	}
	return internalError
}
