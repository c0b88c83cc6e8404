package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/jobdeck/backend/api/transport"
	"github.com/jobdeck/backend/pkg/httpcontext"
	appUC "github.com/jobdeck/backend/usecase/application"
)

type ApplicationHandler struct {
	baseHandler
	uc *appUC.UseCase
}

func NewApplicationHandler(uc *appUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Apply to a job
// @Tags applications
// @Router /api/v1/jobs/{id}/apply [post]
func (h *ApplicationHandler) Apply(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	jobID, _ := ctx.UserValue("id").(string)

	var req transport.ApplyRequest
	if len(ctx.PostBody()) > 0 {
		if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
			h.respondInvalid(ctx, "invalid payload")
			return
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.Apply(stdCtx, jobID, userID, req.CoverLetter, req.DocumentIDs)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Applications for a job
// @Tags applications
// @Router /api/v1/applications/job/{jobId} [get]
func (h *ApplicationHandler) ListForJob(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	jobID, _ := ctx.UserValue("jobId").(string)

	opts := appUC.ListOptions{
		Status:  string(ctx.QueryArgs().Peek("status")),
		Search:  string(ctx.QueryArgs().Peek("search")),
		SortBy:  string(ctx.QueryArgs().Peek("sort_by")),
		SortDir: string(ctx.QueryArgs().Peek("sort_dir")),
		Page:    parseInt(string(ctx.QueryArgs().Peek("page")), 1),
		PerPage: parseInt(string(ctx.QueryArgs().Peek("per_page")), 20),
	}
	if from := parseDate(string(ctx.QueryArgs().Peek("from"))); from != nil {
		opts.From = from
	}
	if to := parseDate(string(ctx.QueryArgs().Peek("to"))); to != nil {
		opts.To = to
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.uc.ListForJob(stdCtx, jobID, userID, opts)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, result)
}

// @Summary Own applications
// @Tags applications
// @Router /api/v1/applications/my-applications [get]
func (h *ApplicationHandler) ListMine(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	apps, err := h.uc.ListForApplicant(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, apps)
}

// @Summary Update application status
// @Tags applications
// @Router /api/v1/applications/{id} [put]
func (h *ApplicationHandler) UpdateStatus(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, _ := ctx.UserValue("id").(string)

	var req transport.ApplicationStatusRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateStatus(stdCtx, id, userID, req.Status)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Set company notes
// @Tags applications
// @Router /api/v1/applications/{id}/notes [post]
func (h *ApplicationHandler) SetNotes(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	id, _ := ctx.UserValue("id").(string)

	var req transport.ApplicationNotesRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.SetNotes(stdCtx, id, userID, req.Notes)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Bulk status update
// @Tags applications
// @Router /api/v1/applications/bulk-update [put]
func (h *ApplicationHandler) BulkUpdateStatus(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.BulkStatusRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	modified, err := h.uc.BulkUpdateStatus(stdCtx, req.IDs, userID, req.Status)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]int64{"modified": modified})
}

// @Summary Bulk notes update
// @Tags applications
// @Router /api/v1/applications/bulk-notes [post]
func (h *ApplicationHandler) BulkSetNotes(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.BulkNotesRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondInvalid(ctx, "invalid payload")
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	modified, err := h.uc.BulkSetNotes(stdCtx, req.IDs, userID, req.Notes)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, map[string]int64{"modified": modified})
}

// @Summary Export applications as CSV
// @Tags applications
// @Router /api/v1/applications/export/csv/{jobId} [get]
func (h *ApplicationHandler) ExportCSV(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}
	jobID, _ := ctx.UserValue("jobId").(string)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	payload, err := h.uc.ExportCSV(stdCtx, jobID, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.Response.Header.SetContentType("text/csv")
	ctx.Response.Header.Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename="applications-%s.csv"`, jobID))
	ctx.SetStatusCode(http.StatusOK)
	ctx.SetBody(payload)
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed
		}
	}
	return nil
}
