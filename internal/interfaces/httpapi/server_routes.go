package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerCompetitionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons/{seasonID}/standings", handler.GetSeasonStandings)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/players/{playerID}/suspension", handler.GetPlayerSuspension)
	mux.HandleFunc("POST /v1/seasons/{seasonID}/matches/{matchID}/suspension-checks", handler.CheckMatchLineup)
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/recalculate-discipline", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRecalculateDisciplineJob)))
}
