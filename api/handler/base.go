package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/jobdeck/backend/api/transport"
	"github.com/jobdeck/backend/domain"
	"github.com/jobdeck/backend/internal/middleware"
	"github.com/jobdeck/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload transport.Envelope) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondSuccess(ctx *fasthttp.RequestCtx, status int, data interface{}) {
	h.respondJSON(ctx, status, transport.NewSuccess(data, nil))
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status, envelope := mapError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err))
	}
	h.respondJSON(ctx, status, envelope)
}

func (h baseHandler) respondInvalid(ctx *fasthttp.RequestCtx, message string) {
	h.respondJSON(ctx, http.StatusBadRequest,
		transport.NewError(string(domain.ErrKindValidation), message, nil))
}

// userID returns the identity forwarded by the auth middleware, writing a
// generic 401 when it is absent.
func (h baseHandler) userID(ctx *fasthttp.RequestCtx) string {
	userID := string(ctx.Request.Header.Peek(middleware.HeaderUserID))
	if userID == "" {
		h.respondJSON(ctx, http.StatusUnauthorized,
			transport.NewError(string(domain.ErrKindUnauthenticated), "not authorized", nil))
	}
	return userID
}

// mapError converts a domain error into an HTTP status and envelope.
// Ownership failures map to 401 rather than 403 to stay wire-compatible
// with the system this one replaced; the kind field still distinguishes
// them.
func mapError(err error) (int, transport.Envelope) {
	var dErr *domain.Error
	if !errors.As(err, &dErr) {
		return http.StatusInternalServerError,
			transport.NewError(string(domain.ErrKindInternal), "internal server error", nil)
	}

	status := http.StatusInternalServerError
	switch dErr.Kind {
	case domain.ErrKindUnauthenticated, domain.ErrKindUnauthorized:
		status = http.StatusUnauthorized
	case domain.ErrKindForbidden:
		status = http.StatusForbidden
	case domain.ErrKindNotFound:
		status = http.StatusNotFound
	case domain.ErrKindValidation:
		status = http.StatusBadRequest
	case domain.ErrKindInvalidState:
		status = http.StatusConflict
	}

	message := dErr.Message
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	return status, transport.NewError(string(dErr.Kind), message, dErr.Fields)
}

func parseInt(value string, fallback int) int {
	if v, err := strconv.Atoi(value); err == nil {
		return v
	}
	return fallback
}
