package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/morf1lo/social-network/internal/dto"
	"github.com/morf1lo/social-network/internal/model"
)

func (h *Handler) usersGetRecommendations(user *model.User, w http.ResponseWriter, r *http.Request) {
	pagination, err := parseOffsetPagination(r)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	recommendations, err := h.services.User.GetRecommendations(r.Context(), user.ID, pagination)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, recommendations, http.StatusOK)
}

func (h *Handler) usersGetMe(user *model.User, w http.ResponseWriter, r *http.Request) {
	h.Respond(w, user, http.StatusOK)
}

func (h *Handler) usersDeleteMe(user *model.User, w http.ResponseWriter, r *http.Request) {
	if err := h.services.User.Delete(r.Context(), user.ID); err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, Resp{}, http.StatusOK)
}

func (h *Handler) usersSetPrivacy(user *model.User, w http.ResponseWriter, r *http.Request) {
	var input dto.SetPrivacy
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.User.SetPrivacy(r.Context(), user.ID, input.Private); err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, Resp{}, http.StatusOK)
}

func (h *Handler) usersGet(user *model.User, w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil {
		h.Respond(w, Resp{"error": errInvalidUserID.Error()}, http.StatusBadRequest)
		return
	}

	view, err := h.services.User.GetView(r.Context(), user.ID, userID)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, view, http.StatusOK)
}
