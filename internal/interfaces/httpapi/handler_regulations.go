package httpapi

import (
	"net/http"

	"github.com/riskibarqy/the-gaffer/internal/domain/regulations"
)

func (h *Handler) GetRegulations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRegulations")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, regulationsToDTO(h.regulationsService.Get(ctx)))
}

func (h *Handler) AcceptRegulations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AcceptRegulations")
	defer span.End()

	workspace, err := requestWorkspace(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req acceptRegulationsRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.regulationsService.Accept(ctx, workspace, regulations.ChecklistFromSlice(req.Checklist))
	if err != nil {
		h.logger.WarnContext(ctx, "accept regulations failed", "workspace", workspace, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(view))
}
