package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	// Unknown paths land on the home route.
	mux.HandleFunc("/", handler.RedirectHome)
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/session", RequireWorkspace(http.HandlerFunc(handler.GetSession)))
	mux.Handle("DELETE /v1/session", RequireWorkspace(http.HandlerFunc(handler.Logout)))
	mux.Handle("POST /v1/onboarding/leagues", RequireWorkspace(http.HandlerFunc(handler.CreateLeague)))
	mux.Handle("POST /v1/onboarding/join", RequireWorkspace(http.HandlerFunc(handler.JoinLeague)))
}

func registerRegulationRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/regulations", handler.GetRegulations)
	mux.Handle("POST /v1/regulations/accept", RequireWorkspace(http.HandlerFunc(handler.AcceptRegulations)))
}

func registerGatedRoutes(mux *http.ServeMux, handler *Handler, sessions SessionReader) {
	gated := func(h http.HandlerFunc) http.Handler {
		return RequireWorkspace(RequireRules(sessions, h))
	}

	mux.Handle("GET /v1/dashboard", gated(handler.GetDashboard))
	mux.Handle("POST /v1/dashboard/fixtures/{fixtureID}/solutions", gated(handler.SubmitSolution))
	mux.Handle("GET /v1/table", gated(handler.GetLeagueTable))
	mux.Handle("GET /v1/vault", gated(handler.SearchVault))
	mux.Handle("GET /v1/vault/solutions/{solutionID}/file", gated(handler.DownloadSolutionFile))
	mux.Handle("POST /v1/media/edits", gated(handler.SubmitImageEdit))
	mux.Handle("GET /v1/media/edits/{jobID}", gated(handler.GetImageEdit))
}
