package main

import (
	"net/http"

	"whalink/internal/models"
	"whalink/internal/store"
	"whalink/internal/validation"

	"github.com/gorilla/mux"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if !s.decodeJSON(w, r, &req) {
			return
		}

		user, err := s.store.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, user)
	}
}

type registerRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	IsCorporate bool   `json:"isCorporate"`
	CompanyName string `json:"companyName"`
	TaxID       string `json:"taxId"`
}

func (s *Server) handleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if !s.decodeJSON(w, r, &req) {
			return
		}

		if err := validation.ValidateEmail(req.Email); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := validation.ValidateDisplayName(req.Name); err != nil {
			s.writeError(w, r, err)
			return
		}

		user, err := s.store.Register(r.Context(), store.RegisterInput{
			Name:        req.Name,
			Email:       req.Email,
			Password:    req.Password,
			IsCorporate: req.IsCorporate,
			CompanyName: req.CompanyName,
			TaxID:       req.TaxID,
		})
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, user)
	}
}

func (s *Server) handleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.store.Logout(r.Context()); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleCurrentUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.store.CurrentUser(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if user == nil {
			s.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
			return
		}
		s.writeJSON(w, http.StatusOK, user)
	}
}

func (s *Server) handleUpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var patch models.UserPatch
		if !s.decodeJSON(w, r, &patch) {
			return
		}

		if patch.Email != nil {
			if err := validation.ValidateEmail(*patch.Email); err != nil {
				s.writeError(w, r, err)
				return
			}
		}

		if err := s.store.UpdateProfile(r.Context(), patch); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleListAccounts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		accounts, err := s.store.Accounts(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, accounts)
	}
}

type addAccountRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Name        string `json:"name"`
}

func (s *Server) handleAddAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addAccountRequest
		if !s.decodeJSON(w, r, &req) {
			return
		}

		if err := validation.ValidatePhoneNumber(req.PhoneNumber); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := validation.ValidateDisplayName(req.Name); err != nil {
			s.writeError(w, r, err)
			return
		}

		account, err := s.store.AddAccount(r.Context(), req.PhoneNumber, req.Name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, account)
	}
}

func (s *Server) handleDeleteAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.store.DeleteAccount(r.Context(), mux.Vars(r)["id"]); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleDisconnectAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.store.DisconnectAccount(r.Context(), mux.Vars(r)["id"]); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleReconnectAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.store.ReconnectAccount(r.Context(), mux.Vars(r)["id"]); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

type pairingCodeRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

func (s *Server) handlePairingCode() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req pairingCodeRequest
		if !s.decodeJSON(w, r, &req) {
			return
		}

		code, err := s.store.GeneratePairingCode(r.Context(), req.PhoneNumber)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, map[string]string{"code": code})
	}
}

func (s *Server) handleQRPairing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addAccountRequest
		if !s.decodeJSON(w, r, &req) {
			return
		}

		if err := validation.ValidatePhoneNumber(req.PhoneNumber); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := validation.ValidateDisplayName(req.Name); err != nil {
			s.writeError(w, r, err)
			return
		}

		account, pairing, err := s.store.BeginQRPairing(r.Context(), req.PhoneNumber, req.Name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, map[string]interface{}{
			"account": account,
			"pairing": pairing,
		})
	}
}

func (s *Server) handleCompletePairing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		account, err := s.store.CompletePairing(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, account)
	}
}

func (s *Server) handleListChats() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chats, err := s.store.Chats(r.Context(), r.URL.Query().Get("accountId"))
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, chats)
	}
}

func (s *Server) handleListMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		messages, err := s.store.Messages(r.Context(), mux.Vars(r)["id"])
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, messages)
	}
}

type sendMessageRequest struct {
	Text    string           `json:"text"`
	ReplyTo *models.ReplyRef `json:"replyTo,omitempty"`
}

func (s *Server) handleSendMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendMessageRequest
		if !s.decodeJSON(w, r, &req) {
			return
		}

		msg, err := s.store.SendMessage(r.Context(), mux.Vars(r)["id"], req.Text, req.ReplyTo)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, msg)
	}
}

func (s *Server) handleListWebhooks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hooks, err := s.store.Webhooks(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, hooks)
	}
}

type addWebhookRequest struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

func (s *Server) handleAddWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addWebhookRequest
		if !s.decodeJSON(w, r, &req) {
			return
		}

		if err := validation.ValidateWebhookURL(req.URL); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := validation.ValidateDisplayName(req.Name); err != nil {
			s.writeError(w, r, err)
			return
		}

		hook, err := s.store.AddWebhook(r.Context(), req.URL, req.Name)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, hook)
	}
}

func (s *Server) handleDeleteWebhook() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.store.DeleteWebhook(r.Context(), mux.Vars(r)["id"]); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleListTemplates() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		templates, err := s.store.Templates(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, templates)
	}
}

type addTemplateRequest struct {
	Shortcut string `json:"shortcut"`
	Content  string `json:"content"`
}

func (s *Server) handleAddTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addTemplateRequest
		if !s.decodeJSON(w, r, &req) {
			return
		}

		if err := validation.ValidateShortcut(req.Shortcut); err != nil {
			s.writeError(w, r, err)
			return
		}
		if err := validation.ValidateTemplateContent(req.Content); err != nil {
			s.writeError(w, r, err)
			return
		}

		tpl, err := s.store.AddTemplate(r.Context(), req.Shortcut, req.Content)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusCreated, tpl)
	}
}

func (s *Server) handleDeleteTemplate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.store.DeleteTemplate(r.Context(), mux.Vars(r)["id"]); err != nil {
			s.writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) handleListBlogPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		posts, err := s.store.BlogPosts(r.Context())
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.writeJSON(w, http.StatusOK, posts)
	}
}

func (s *Server) handleGetBlogPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		post, err := s.store.BlogPost(r.Context(), mux.Vars(r)["slug"])
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		if post == nil {
			s.writeJSON(w, http.StatusNotFound, map[string]string{"error": "post not found"})
			return
		}
		s.writeJSON(w, http.StatusOK, post)
	}
}
