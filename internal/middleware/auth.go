package middleware

import (
	"encoding/json"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/jobdeck/backend/api/transport"
	"github.com/jobdeck/backend/domain"
	"github.com/jobdeck/backend/pkg/token"
)

// Identity headers forwarded to handlers after successful verification.
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

// Auth verifies the bearer credential and forwards the resolved identity to
// the wrapped handler. The credential may arrive either as
// "Authorization: Bearer <t>" or in the legacy "x-auth-token" header.
// Missing and invalid credentials produce the same generic response so
// clients cannot tell the cases apart.
func Auth(tokens *token.Manager, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				reject(ctx)
				return
			}

			claims, err := tokens.Parse(tokenString)
			if err != nil {
				logger.Warn("token verification failed", zap.Error(err))
				reject(ctx)
				return
			}

			// Scrub any client-supplied identity headers before trusting them.
			ctx.Request.Header.Set(HeaderUserID, claims.UserID)
			ctx.Request.Header.Set(HeaderUserRole, claims.Role)

			next(ctx)
		}
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if legacy := string(ctx.Request.Header.Peek("x-auth-token")); legacy != "" {
		return legacy
	}
	return ""
}

func reject(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	body, _ := json.Marshal(transport.NewError(string(domain.ErrKindUnauthenticated), "not authorized", nil))
	ctx.SetBody(body)
}
