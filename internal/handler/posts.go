package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/morf1lo/social-network/internal/dto"
	"github.com/morf1lo/social-network/internal/model"
)

func (h *Handler) postsGetLatest(user *model.User, w http.ResponseWriter, r *http.Request) {
	pagination, err := parseCursorPagination(r)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	posts, err := h.services.Post.GetLatest(r.Context(), user.ID, pagination)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, posts, http.StatusOK)
}

func (h *Handler) postsCreate(user *model.User, w http.ResponseWriter, r *http.Request) {
	var input dto.CreatePost
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	post, err := h.services.Post.Create(r.Context(), user.ID, input)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, post, http.StatusCreated)
}

func (h *Handler) postsGet(user *model.User, w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(r.PathValue("postId"))
	if err != nil {
		h.Respond(w, Resp{"error": errInvalidPostID.Error()}, http.StatusBadRequest)
		return
	}

	post, err := h.services.Post.GetByID(r.Context(), user.ID, postID)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, post, http.StatusOK)
}

func (h *Handler) postsDelete(user *model.User, w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(r.PathValue("postId"))
	if err != nil {
		h.Respond(w, Resp{"error": errInvalidPostID.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.Post.Delete(r.Context(), user.ID, postID); err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, Resp{}, http.StatusOK)
}

func (h *Handler) postsGetByAuthor(user *model.User, w http.ResponseWriter, r *http.Request) {
	authorID, err := uuid.Parse(r.PathValue("userId"))
	if err != nil {
		h.Respond(w, Resp{"error": errInvalidUserID.Error()}, http.StatusBadRequest)
		return
	}

	pagination, err := parseCursorPagination(r)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	posts, err := h.services.Post.GetByAuthor(r.Context(), user.ID, authorID, pagination)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, posts, http.StatusOK)
}

func (h *Handler) postsGetComments(user *model.User, w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(r.PathValue("postId"))
	if err != nil {
		h.Respond(w, Resp{"error": errInvalidPostID.Error()}, http.StatusBadRequest)
		return
	}

	pagination, err := parseCursorPagination(r)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	comments, err := h.services.Post.GetComments(r.Context(), user.ID, postID, pagination)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, comments, http.StatusOK)
}

func (h *Handler) postsCreateComment(user *model.User, w http.ResponseWriter, r *http.Request) {
	postID, err := uuid.Parse(r.PathValue("postId"))
	if err != nil {
		h.Respond(w, Resp{"error": errInvalidPostID.Error()}, http.StatusBadRequest)
		return
	}

	var input dto.CreatePost
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	comment, err := h.services.Post.CreateComment(r.Context(), user.ID, postID, input)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, comment, http.StatusCreated)
}
