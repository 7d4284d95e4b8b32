package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sgs-events/eventdesk/internal/api/middleware"
	"github.com/sgs-events/eventdesk/internal/api/request"
	"github.com/sgs-events/eventdesk/internal/api/response"
	"github.com/sgs-events/eventdesk/internal/services/login"
)

// LoginHandler handles the login and session endpoints
type LoginHandler struct {
	loginService *login.Service
}

// NewLoginHandler creates a new login handler
func NewLoginHandler(loginService *login.Service) *LoginHandler {
	return &LoginHandler{
		loginService: loginService,
	}
}

// RequestCode handles POST /api/v1/login/code. On success the code has
// been handed to the delivery channel; the response carries only the
// session token, never the code.
func (h *LoginHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	var req request.RequestCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Phone == "" {
		WriteError(w, NewInvalidRequestError("phone is required"))
		return
	}

	// A bearer token from an earlier request, if present, lets the same
	// session request a fresh code.
	existingToken := ""
	if session := middleware.GetSession(r.Context()); session != nil {
		existingToken = session.Token
	}

	session, err := h.loginService.RequestCode(r.Context(), existingToken, req.Phone)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// VerifyCode handles POST /api/v1/login/verify
func (h *LoginHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req request.VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Code == "" {
		WriteError(w, NewInvalidRequestError("code is required"))
		return
	}

	session := middleware.MustGetSession(r.Context())

	verified, err := h.loginService.Verify(r.Context(), session.Token, req.Code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(verified))
}

// AdminLogin handles POST /api/v1/login/admin
func (h *LoginHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req request.AdminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Password == "" {
		WriteError(w, NewInvalidRequestError("password is required"))
		return
	}

	session := middleware.MustGetSession(r.Context())

	upgraded, err := h.loginService.AuthorizeAdmin(r.Context(), session.Token, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(upgraded))
}

// Logout handles POST /api/v1/logout
func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	h.loginService.Logout(session.Token)
	response.NoContent(w)
}

// GetSession handles GET /api/v1/session
func (h *LoginHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session := middleware.MustGetSession(r.Context())
	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}
