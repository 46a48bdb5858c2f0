package httpapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/league-draft/internal/domain/draft"
	"github.com/riskibarqy/league-draft/internal/domain/user"
	"github.com/riskibarqy/league-draft/internal/platform/logging"
	"github.com/riskibarqy/league-draft/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

type Handler struct {
	draftService *usecase.DraftService
	logger       *logging.Logger
	validator    *validator.Validate
}

func NewHandler(draftService *usecase.DraftService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		draftService: draftService,
		logger:       logger.Named("httpapi"),
		validator:    validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// decodeRequest reads a JSON body strictly. An empty body leaves dst zeroed.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(bytes.TrimSpace(body)) > 0 {
		decoder := sonic.ConfigDefault.NewDecoder(bytes.NewReader(body))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(dst); err != nil {
			return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
		}
	}
	return h.validateRequest(ctx, dst)
}

func requestPrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

// adminPrincipal rejects non-admins before the body is even decoded, so a
// viewer always sees permission denied rather than a validation error.
func adminPrincipal(ctx context.Context) (user.Principal, error) {
	principal, err := requestPrincipal(ctx)
	if err != nil {
		return user.Principal{}, err
	}
	if !principal.IsAdmin {
		return user.Principal{}, fmt.Errorf("%w: user=%s is not a league admin", draft.ErrPermissionDenied, principal.UserID)
	}
	return principal, nil
}
