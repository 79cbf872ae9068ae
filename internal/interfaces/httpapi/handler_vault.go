package httpapi

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/the-gaffer/internal/usecase"
)

const fallbackAttachmentName = "solution"

func (h *Handler) SearchVault(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchVault")
	defer span.End()

	workspace, err := requestWorkspace(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	vault, err := h.vaultService.Search(ctx, workspace, query)
	if err != nil {
		h.logger.ErrorContext(ctx, "search vault failed", "workspace", workspace, "query", query, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, vaultToDTO(query, vault))
}

func (h *Handler) DownloadSolutionFile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DownloadSolutionFile")
	defer span.End()

	workspace, err := requestWorkspace(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	solutionID := r.PathValue("solutionID")
	file, err := h.vaultService.File(ctx, workspace, solutionID)
	if err != nil {
		h.logger.WarnContext(ctx, "download solution file failed", "workspace", workspace, "solution_id", solutionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	if err := writeAttachment(w, file); err != nil {
		h.logger.WarnContext(ctx, "write solution file failed", "solution_id", solutionID, "error", err)
	}
}

// writeAttachment always forces a download; stored files carry whatever
// content type the uploader sent.
func writeAttachment(w http.ResponseWriter, file usecase.VaultFile) error {
	name := strings.TrimSpace(file.Name)
	if name == "" {
		name = fallbackAttachmentName
	}
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": name})

	mimeType := file.MimeType
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	w.Header().Set("Content-Disposition", disposition)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, err := w.Write(file.Data)
	return err
}
