package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/jobdeck/backend/api/transport"
	"github.com/jobdeck/backend/domain"
	"github.com/jobdeck/backend/pkg/httpcontext"
	"github.com/jobdeck/backend/repository"
	jobUC "github.com/jobdeck/backend/usecase/job"
)

type JobHandler struct {
	baseHandler
	uc *jobUC.UseCase
}

func NewJobHandler(uc *jobUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *JobHandler {
	return &JobHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Create job
// @Tags jobs
// @Router /api/v1/jobs [post]
func (h *JobHandler) Create(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.JobRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Create(stdCtx, userID, req.ToJob())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Public job listing
// @Tags jobs
// @Router /api/v1/jobs [get]
func (h *JobHandler) PublicList(ctx *fasthttp.RequestCtx) {
	filter := repository.JobFilter{
		JobType:         string(ctx.QueryArgs().Peek("job_type")),
		WorkMode:        string(ctx.QueryArgs().Peek("work_mode")),
		ExperienceLevel: string(ctx.QueryArgs().Peek("experience_level")),
		Location:        string(ctx.QueryArgs().Peek("location")),
		Search:          string(ctx.QueryArgs().Peek("search")),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	jobs, err := h.uc.PublicList(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, jobs)
}

// @Summary Own jobs, any status
// @Tags jobs
// @Router /api/v1/jobs/myjobs [get]
func (h *JobHandler) OwnerList(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	jobs, err := h.uc.OwnerList(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, jobs)
}

// @Summary Fetch one job
// @Tags jobs
// @Router /api/v1/jobs/{id} [get]
func (h *JobHandler) Get(ctx *fasthttp.RequestCtx) {
	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	job, err := h.uc.Get(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, job)
}

// @Summary Update job
// @Tags jobs
// @Router /api/v1/jobs/{id} [put]
func (h *JobHandler) Update(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, _ := ctx.UserValue("id").(string)

	var req transport.JobRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.Update(stdCtx, id, userID, req.ToJob())
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Close job
// @Tags jobs
// @Router /api/v1/jobs/{id}/close [patch]
func (h *JobHandler) Close(ctx *fasthttp.RequestCtx) {
	h.transition(ctx, h.uc.Close)
}

// @Summary Reopen job
// @Tags jobs
// @Router /api/v1/jobs/{id}/reopen [patch]
func (h *JobHandler) Reopen(ctx *fasthttp.RequestCtx) {
	h.transition(ctx, h.uc.Reopen)
}

// @Summary Delete job
// @Tags jobs
// @Router /api/v1/jobs/{id} [delete]
func (h *JobHandler) Delete(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Delete(stdCtx, id, userID); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]string{"deleted": id})
}

// @Summary Per-job analytics
// @Tags jobs
// @Router /api/v1/jobs/{id}/analytics [get]
func (h *JobHandler) Analytics(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.Analytics(stdCtx, id, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}

// @Summary Company dashboard
// @Tags jobs
// @Router /api/v1/jobs/analytics/dashboard [get]
func (h *JobHandler) Dashboard(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	stats, err := h.uc.Dashboard(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, stats)
}

type transitionFunc func(ctx context.Context, id, callerID string) (*domain.Job, error)

func (h *JobHandler) transition(ctx *fasthttp.RequestCtx, fn transitionFunc) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, _ := ctx.UserValue("id").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	job, err := fn(stdCtx, id, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, job)
}
