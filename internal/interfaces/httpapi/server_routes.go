package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/gameweeks", handler.ListGameweeks)
	mux.HandleFunc("GET /v1/gameweeks/{gameweekID}/fixtures", handler.ListFixturesByGameweek)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/players/{playerID}/predictions", handler.ListPlayerPredictions)
	mux.HandleFunc("POST /v1/predictions", handler.SubmitPredictions)
	mux.HandleFunc("GET /v1/tables/live", handler.GetLiveTable)
	mux.HandleFunc("GET /v1/tables/weekly", handler.GetWeeklyTable)
	mux.HandleFunc("GET /v1/tables/season", handler.GetSeasonTable)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/players", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RegisterPlayer)))
	mux.Handle("PUT /v1/fixtures/{fixtureID}/result", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.EnterFixtureResult)))
	mux.Handle("POST /v1/gameweeks/{gameweekID}/activate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.ActivateGameweek)))
	mux.Handle("POST /v1/gameweeks/{gameweekID}/complete", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.CompleteGameweek)))
	mux.Handle("POST /v1/gameweeks/{gameweekID}/calculate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.CalculateGameweekScores)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/jobs/sync-results", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunSyncResultsJob)))
	mux.Handle("POST /v1/internal/jobs/rescore-season", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.RunRescoreSeasonJob)))
}
