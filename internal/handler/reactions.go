package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/morf1lo/social-network/internal/dto"
	"github.com/morf1lo/social-network/internal/model"
)

func (h *Handler) reactionsCreate(user *model.User, w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(r.PathValue("postId"))
	if err != nil {
		h.Respond(w, Resp{"error": errInvalidPostID.Error()}, http.StatusBadRequest)
		return
	}

	var input dto.CreateReaction
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	reaction, err := h.services.Reaction.Create(r.Context(), user.ID, postID, input.Type)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, reaction, http.StatusCreated)
}

func (h *Handler) reactionsDelete(user *model.User, w http.ResponseWriter, r *http.Request) {
	reactionID, err := uuid.Parse(r.PathValue("reactionId"))
	if err != nil {
		h.Respond(w, Resp{"error": errInvalidReactionID.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.Reaction.Delete(r.Context(), user.ID, reactionID); err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, Resp{}, http.StatusOK)
}

func (h *Handler) reactionsGetByUser(user *model.User, w http.ResponseWriter, r *http.Request) {
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

	reactions, err := h.services.Reaction.GetUserReactions(r.Context(), user.ID, userID, r.URL.Query().Get("type"), pagination.Limit, pagination.Skip)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, reactions, http.StatusOK)
}
