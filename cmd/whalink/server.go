package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"whalink/internal/errors"
	"whalink/internal/middleware"
	"whalink/internal/models"
	"whalink/internal/store"
	"whalink/internal/tracing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type Server struct {
	router *mux.Router
	logger *logrus.Logger
	store  *store.Store
	cfg    *models.Config
	server *http.Server
}

func NewServer(cfg *models.Config, st *store.Store, logger *logrus.Logger) *Server {
	s := &Server{
		router: mux.NewRouter(),
		logger: logger,
		store:  st,
		cfg:    cfg,
	}

	s.router.Use(middleware.Observability(logger))
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.HandleFunc("/health", s.handleHealth()).Methods(http.MethodGet)
	s.router.HandleFunc("/metrics", s.handleMetrics()).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Auth and profile
	api.HandleFunc("/auth/login", s.handleLogin()).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", s.handleRegister()).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", s.handleLogout()).Methods(http.MethodPost)
	api.HandleFunc("/auth/me", s.handleCurrentUser()).Methods(http.MethodGet)
	api.HandleFunc("/profile", s.handleUpdateProfile()).Methods(http.MethodPatch)

	// Accounts and pairing
	api.HandleFunc("/accounts", s.handleListAccounts()).Methods(http.MethodGet)
	api.HandleFunc("/accounts", s.handleAddAccount()).Methods(http.MethodPost)
	api.HandleFunc("/accounts/{id}", s.handleDeleteAccount()).Methods(http.MethodDelete)
	api.HandleFunc("/accounts/{id}/disconnect", s.handleDisconnectAccount()).Methods(http.MethodPost)
	api.HandleFunc("/accounts/{id}/reconnect", s.handleReconnectAccount()).Methods(http.MethodPost)
	api.HandleFunc("/accounts/{id}/pair", s.handleCompletePairing()).Methods(http.MethodPost)
	api.HandleFunc("/pairing/code", s.handlePairingCode()).Methods(http.MethodPost)
	api.HandleFunc("/pairing/qr", s.handleQRPairing()).Methods(http.MethodPost)

	// Chats and messages
	api.HandleFunc("/chats", s.handleListChats()).Methods(http.MethodGet)
	api.HandleFunc("/chats/{id}/messages", s.handleListMessages()).Methods(http.MethodGet)
	api.HandleFunc("/chats/{id}/messages", s.handleSendMessage()).Methods(http.MethodPost)
	api.HandleFunc("/chats/{id}/stream", s.handleChatStream()).Methods(http.MethodGet)

	// Automation
	api.HandleFunc("/webhooks", s.handleListWebhooks()).Methods(http.MethodGet)
	api.HandleFunc("/webhooks", s.handleAddWebhook()).Methods(http.MethodPost)
	api.HandleFunc("/webhooks/{id}", s.handleDeleteWebhook()).Methods(http.MethodDelete)
	api.HandleFunc("/templates", s.handleListTemplates()).Methods(http.MethodGet)
	api.HandleFunc("/templates", s.handleAddTemplate()).Methods(http.MethodPost)
	api.HandleFunc("/templates/{id}", s.handleDeleteTemplate()).Methods(http.MethodDelete)

	// Blog
	api.HandleFunc("/blog", s.handleListBlogPosts()).Methods(http.MethodGet)
	api.HandleFunc("/blog/{slug}", s.handleGetBlogPost()).Methods(http.MethodGet)
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.Server.IdleTimeoutSec) * time.Second,
	}

	s.logger.Infof("Starting server on port %d", s.cfg.Server.Port)
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Error("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	tracing.RecordError(r.Context(), err)

	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidCredentials:
		status = http.StatusUnauthorized
	case errors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	}

	msg := errors.GetUserMessage(err)
	if appErr, ok := err.(*errors.AppError); ok && appErr.UserMessage == "" && status != http.StatusInternalServerError {
		msg = appErr.Message
	}

	s.writeJSON(w, status, map[string]string{
		"error": msg,
		"code":  string(errors.GetCode(err)),
	})
}

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeError(w, r, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid request body").
			WithUserMessage("Request body is not valid JSON"))
		return false
	}
	return true
}
