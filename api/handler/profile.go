package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/jobdeck/backend/api/transport"
	"github.com/jobdeck/backend/domain"
	"github.com/jobdeck/backend/pkg/httpcontext"
	profileUC "github.com/jobdeck/backend/usecase/profile"
)

type ProfileHandler struct {
	baseHandler
	uc *profileUC.UseCase
}

func NewProfileHandler(uc *profileUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Own profile
// @Tags profile
// @Router /api/v1/profile [get]
func (h *ProfileHandler) Get(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Get(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary View a user's profile
// @Tags profile
// @Router /api/v1/users/{id} [get]
func (h *ProfileHandler) View(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	targetID, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.View(stdCtx, targetID, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Update profile
// @Tags profile
// @Router /api/v1/profile [put]
func (h *ProfileHandler) Update(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.ProfileUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.Update(stdCtx, userID, profileUC.UpdateInput{
		Name:     req.Name,
		Headline: req.Headline,
		Location: req.Location,
		About:    req.About,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Add document
// @Tags profile
// @Router /api/v1/profile/documents [post]
func (h *ProfileHandler) AddDocument(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.DocumentRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.AddDocument(stdCtx, userID, domain.Document{
		Name: req.Name,
		Kind: req.Kind,
		URL:  req.URL,
	})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, user)
}

// @Summary Remove document
// @Tags profile
// @Router /api/v1/profile/documents/{docId} [delete]
func (h *ProfileHandler) RemoveDocument(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	docID, _ := ctx.UserValue("docId").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.RemoveDocument(stdCtx, userID, docID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Add skill
// @Tags profile
// @Router /api/v1/profile/skills [post]
func (h *ProfileHandler) AddSkill(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.SkillRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.AddSkill(stdCtx, userID, domain.Skill{Name: req.Name, Level: req.Level})
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, user)
}

// @Summary Remove skill
// @Tags profile
// @Router /api/v1/profile/skills/{skillId} [delete]
func (h *ProfileHandler) RemoveSkill(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	skillID, _ := ctx.UserValue("skillId").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.RemoveSkill(stdCtx, userID, skillID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}

// @Summary Add experience entry
// @Tags profile
// @Router /api/v1/profile/experience [post]
func (h *ProfileHandler) AddExperience(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.ExperienceRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	exp := domain.Experience{
		Title:       req.Title,
		Company:     req.Company,
		Description: req.Description,
	}
	if from, err := time.Parse("2006-01-02", req.From); err == nil {
		exp.From = from
	}
	if to, err := time.Parse("2006-01-02", req.To); err == nil {
		exp.To = &to
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.AddExperience(stdCtx, userID, exp)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, user)
}

// @Summary Remove experience entry
// @Tags profile
// @Router /api/v1/profile/experience/{expId} [delete]
func (h *ProfileHandler) RemoveExperience(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	expID, _ := ctx.UserValue("expId").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.RemoveExperience(stdCtx, userID, expID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, user)
}
