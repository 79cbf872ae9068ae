package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/riskibarqy/the-gaffer/internal/usecase"
)

const solutionFormField = "file"

func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDashboard")
	defer span.End()

	workspace, err := requestWorkspace(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	dashboard, err := h.dashboardService.Get(ctx, workspace)
	if err != nil {
		h.logger.ErrorContext(ctx, "get dashboard failed", "workspace", workspace, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, dashboardToDTO(dashboard))
}

func (h *Handler) SubmitSolution(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitSolution")
	defer span.End()

	workspace, err := requestWorkspace(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	fixtureID := r.PathValue("fixtureID")

	r.Body = http.MaxBytesReader(w, r.Body, h.uploadMaxBytes)
	if err := r.ParseMultipartForm(h.uploadMaxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(ctx, w, fmt.Errorf("%w: upload exceeds %d bytes", usecase.ErrInvalidInput, tooLarge.Limit))
			return
		}
		writeError(ctx, w, fmt.Errorf("%w: invalid multipart payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile(solutionFormField)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: form field %q is required", usecase.ErrInvalidInput, solutionFormField))
		return
	}
	defer file.Close()

	result, err := h.dashboardService.Submit(ctx, workspace, fixtureID, usecase.Upload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     file,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit solution failed", "workspace", workspace, "fixture_id", fixtureID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, submissionResultToDTO(result))
}

func (h *Handler) GetLeagueTable(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeagueTable")
	defer span.End()

	workspace, err := requestWorkspace(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	standings, err := h.tableService.Get(ctx, workspace)
	if err != nil {
		h.logger.ErrorContext(ctx, "get league table failed", "workspace", workspace, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(standings))
}
