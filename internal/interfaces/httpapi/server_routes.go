package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerReadRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/commentary", handler.GetCommentary)
	mux.HandleFunc("GET /v1/live-update", handler.GetLiveUpdate)
	mux.HandleFunc("GET /v1/streams", handler.GetStream)
	mux.HandleFunc("GET /v1/matches/commented", handler.ListCommentedMatches)
}

func registerWebhookRoutes(mux *http.ServeMux, handler *Handler, webhookSecret string) {
	mux.Handle("POST /v1/commentary", RequireWebhookSecret(webhookSecret, http.HandlerFunc(handler.IngestCommentary)))
	mux.Handle("POST /v1/streams", RequireWebhookSecret(webhookSecret, http.HandlerFunc(handler.UpsertStream)))
	mux.Handle("DELETE /v1/streams", RequireWebhookSecret(webhookSecret, http.HandlerFunc(handler.DeleteStream)))
}
