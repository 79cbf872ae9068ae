package httpapi

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/riskibarqy/the-gaffer/internal/domain/media"
	"github.com/riskibarqy/the-gaffer/internal/platform/dataurl"
	"github.com/riskibarqy/the-gaffer/internal/usecase"
)

func (h *Handler) SubmitImageEdit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitImageEdit")
	defer span.End()

	workspace, err := requestWorkspace(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if !h.mediaService.Enabled() {
		writeError(ctx, w, fmt.Errorf("%w: image editor is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req imageEditRequest
	if err := h.decodeRequest(ctx, http.MaxBytesReader(w, r.Body, h.uploadMaxBytes), &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	mimeType, data, err := dataurl.Decode(req.Image)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: image must be a base64 data URL: %v", usecase.ErrInvalidInput, err))
		return
	}

	job, err := h.mediaService.Submit(ctx, workspace, media.Image{MimeType: mimeType, Data: data}, req.Prompt)
	if err != nil {
		h.logger.WarnContext(ctx, "submit image edit failed", "workspace", workspace, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, imageEditJobToDTO(job, ""))
}

func (h *Handler) GetImageEdit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetImageEdit")
	defer span.End()

	workspace, err := requestWorkspace(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	jobID := r.PathValue("jobID")
	job, err := h.mediaService.Get(ctx, workspace, jobID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var image string
	if job.Status == media.JobDone {
		image, err = dataurl.Encode(job.Result.MimeType, bytes.NewReader(job.Result.Data))
		if err != nil {
			h.logger.ErrorContext(ctx, "encode edited image failed", "job_id", job.ID, "error", err)
			writeError(ctx, w, err)
			return
		}
	}

	writeSuccess(ctx, w, http.StatusOK, imageEditJobToDTO(job, image))
}
