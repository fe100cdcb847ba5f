package api

import (
	"encoding/json"
	"net/http"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// RegisterUser creates an account and returns a fresh token.
func (h *Handler) RegisterUser(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	token, err := h.auth.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.JSON(w, http.StatusCreated, tokenResponse{AccessToken: string(token), TokenType: "Bearer"})
}

// IssueToken exchanges credentials for a JWT.
func (h *Handler) IssueToken(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.renderError(w, err)
		return
	}

	h.JSON(w, http.StatusOK, tokenResponse{AccessToken: string(token), TokenType: "Bearer"})
}
