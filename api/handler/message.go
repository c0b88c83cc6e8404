package handler

import (
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/jobdeck/backend/api/transport"
	"github.com/jobdeck/backend/pkg/httpcontext"
	messageUC "github.com/jobdeck/backend/usecase/message"
)

type MessageHandler struct {
	baseHandler
	uc *messageUC.UseCase
}

func NewMessageHandler(uc *messageUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Send message
// @Tags messages
// @Router /api/v1/messages [post]
func (h *MessageHandler) Send(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.MessageRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.ReceiverID == "" {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	msg, err := h.uc.Send(stdCtx, userID, req.ReceiverID, req.Content)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, msg)
}

// @Summary Conversation with a user
// @Tags messages
// @Router /api/v1/messages/{userId} [get]
func (h *MessageHandler) Conversation(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	otherID, _ := ctx.UserValue("userId").(string)
	limit := parseInt(string(ctx.QueryArgs().Peek("limit")), 100)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	msgs, err := h.uc.Conversation(stdCtx, userID, otherID, limit)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, msgs)
}

// @Summary Unread message count
// @Tags messages
// @Router /api/v1/messages/unread/count [get]
func (h *MessageHandler) UnreadCount(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	count, err := h.uc.UnreadCount(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]int64{"unread": count})
}
