package main

import (
	"net/http"

	"spacebook/internal/app/bookings"
	"spacebook/internal/app/spaces"
	"spacebook/internal/app/users"
	"spacebook/internal/auth"
	"spacebook/internal/catalog"
	"spacebook/internal/http/middleware"
	"spacebook/internal/httpapi"
	"spacebook/internal/store"
)

func newHTTPHandler(cfg Config, dataStore *store.Store, cat *catalog.Catalog, tokens *auth.Manager) http.Handler {
	userSvc := users.New(dataStore, tokens)
	spaceSvc := spaces.New(cat)
	bookingSvc := bookings.New(dataStore, cat)

	handler := httpapi.New(userSvc, spaceSvc, bookingSvc, tokens).Routes()

	handler = middleware.CORS(cfg.AllowedOrigins)(handler)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.Recovery()(handler)

	return handler
}
