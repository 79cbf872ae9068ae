package httpapi

import (
	"net/http"

	"github.com/riskibarqy/the-gaffer/internal/usecase"
)

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSession")
	defer span.End()

	workspace, err := requestWorkspace(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.sessionService.Get(ctx, workspace)
	if err != nil {
		h.logger.ErrorContext(ctx, "get session failed", "workspace", workspace, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(view))
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Logout")
	defer span.End()

	workspace, err := requestWorkspace(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.sessionService.Logout(ctx, workspace); err != nil {
		h.logger.ErrorContext(ctx, "logout failed", "workspace", workspace, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(usecase.SessionView{}))
}

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	workspace, err := requestWorkspace(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createLeagueRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.onboardingService.CreateLeague(ctx, workspace, usecase.CreateLeagueInput{
		Name:       req.Name,
		LeagueName: req.LeagueName,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create league failed", "workspace", workspace, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, sessionToDTO(view))
}

func (h *Handler) JoinLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinLeague")
	defer span.End()

	workspace, err := requestWorkspace(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req joinLeagueRequest
	if err := h.decodeRequest(ctx, r.Body, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.onboardingService.JoinLeague(ctx, workspace, usecase.JoinLeagueInput{
		Name:       req.Name,
		InviteCode: req.InviteCode,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "join league failed", "workspace", workspace, "invite_code", req.InviteCode, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(view))
}
