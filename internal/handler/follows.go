package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/morf1lo/social-network/internal/model"
)

func (h *Handler) followsFollow(user *model.User, w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil {
		h.Respond(w, Resp{"error": errInvalidUserID.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.Follow.Follow(r.Context(), user.ID, userID); err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, Resp{}, http.StatusOK)
}

func (h *Handler) followsUnfollow(user *model.User, w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil {
		h.Respond(w, Resp{"error": errInvalidUserID.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.Follow.Unfollow(r.Context(), user.ID, userID); err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, Resp{}, http.StatusOK)
}

func (h *Handler) followsGetFollowers(user *model.User, w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil {
		h.Respond(w, Resp{"error": errInvalidUserID.Error()}, http.StatusBadRequest)
		return
	}

	pagination, err := parseOffsetPagination(r)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	followers, err := h.services.Follow.Followers(r.Context(), userID, pagination)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, followers, http.StatusOK)
}

func (h *Handler) followsGetMutuals(user *model.User, w http.ResponseWriter, r *http.Request) {
	pagination, err := parseOffsetPagination(r)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	mutuals, err := h.services.Follow.Mutuals(r.Context(), user.ID, pagination)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, mutuals, http.StatusOK)
}

func (h *Handler) followsGetFollowing(user *model.User, w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil {
		h.Respond(w, Resp{"error": errInvalidUserID.Error()}, http.StatusBadRequest)
		return
	}

	pagination, err := parseOffsetPagination(r)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	following, err := h.services.Follow.Following(r.Context(), userID, pagination)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, following, http.StatusOK)
}
