package handler

import (
	"encoding/json"
	"net/http"

	"github.com/morf1lo/social-network/internal/dto"
)

func (h *Handler) authSignUp(w http.ResponseWriter, r *http.Request) {
	var input dto.SignUp
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	pair, err := h.services.Auth.SignUp(r.Context(), input)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, pair, http.StatusCreated)
}

func (h *Handler) authSignIn(w http.ResponseWriter, r *http.Request) {
	var input dto.SignIn
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	pair, err := h.services.Auth.SignIn(r.Context(), input)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, pair, http.StatusOK)
}

func (h *Handler) authRefresh(w http.ResponseWriter, r *http.Request) {
	var input dto.Refresh
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	pair, err := h.services.Auth.Refresh(r.Context(), input.RefreshToken)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, pair, http.StatusOK)
}
