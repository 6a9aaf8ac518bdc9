package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/morf1lo/social-network/internal/dto"
	"github.com/morf1lo/social-network/internal/model"
	"github.com/morf1lo/social-network/internal/service"
)

type Resp map[string]interface{}

var upgrader = websocket.Upgrader{
	ReadBufferSize: 1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/auth/signup", h.authSignUp)
	mux.HandleFunc("POST /api/v1/auth/signin", h.authSignIn)
	mux.HandleFunc("POST /api/v1/auth/refresh", h.authRefresh)

	mux.HandleFunc("GET /api/v1/posts", h.withAuth(h.postsGetLatest))
	mux.HandleFunc("POST /api/v1/posts", h.withAuth(h.postsCreate))
	mux.HandleFunc("GET /api/v1/posts/by_user/{userId}", h.withAuth(h.postsGetByAuthor))
	mux.HandleFunc("GET /api/v1/posts/{postId}", h.withAuth(h.postsGet))
	mux.HandleFunc("DELETE /api/v1/posts/{postId}", h.withAuth(h.postsDelete))
	mux.HandleFunc("GET /api/v1/posts/{postId}/comments", h.withAuth(h.postsGetComments))
	mux.HandleFunc("POST /api/v1/posts/{postId}/comments", h.withAuth(h.postsCreateComment))

	mux.HandleFunc("GET /api/v1/users", h.withAuth(h.usersGetRecommendations))
	mux.HandleFunc("GET /api/v1/users/me", h.withAuth(h.usersGetMe))
	mux.HandleFunc("DELETE /api/v1/users/me", h.withAuth(h.usersDeleteMe))
	mux.HandleFunc("POST /api/v1/users/me/privacy", h.withAuth(h.usersSetPrivacy))
	mux.HandleFunc("GET /api/v1/users/me/mutuals", h.withAuth(h.followsGetMutuals))
	mux.HandleFunc("GET /api/v1/users/{userId}", h.withAuth(h.usersGet))
	mux.HandleFunc("GET /api/v1/users/{userId}/followers", h.withAuth(h.followsGetFollowers))
	mux.HandleFunc("GET /api/v1/users/{userId}/following", h.withAuth(h.followsGetFollowing))

	mux.HandleFunc("POST /api/v1/follow/{userId}", h.withAuth(h.followsFollow))
	mux.HandleFunc("POST /api/v1/unfollow/{userId}", h.withAuth(h.followsUnfollow))

	mux.HandleFunc("POST /api/v1/reactions/{postId}", h.withAuth(h.reactionsCreate))
	mux.HandleFunc("DELETE /api/v1/reactions/{reactionId}", h.withAuth(h.reactionsDelete))
	mux.HandleFunc("GET /api/v1/reactions/by_user/{userId}", h.withAuth(h.reactionsGetByUser))

	mux.HandleFunc("GET /api/v1/chat", h.withAuth(h.chatGetChats))
	mux.HandleFunc("GET /api/v1/chat/ws", h.withAuth(h.chatWS))

	mux.HandleFunc("GET /api/v1/notifications", h.withAuth(h.notificationsGet))
	mux.HandleFunc("GET /api/v1/notifications/ws", h.withAuth(h.notificationsWS))

	return mux
}

type authedHandler func(user *model.User, w http.ResponseWriter, r *http.Request)

func (h *Handler) withAuth(next authedHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.authMiddleware(r)
		if err != nil {
			// a failed viewer lookup is an infrastructure error, not a bad token
			if errors.Is(err, service.ErrInternal) {
				h.RespondError(w, err)
				return
			}
			h.Respond(w, Resp{"error": err.Error()}, http.StatusUnauthorized)
			return
		}

		next(user, w, r)
	}
}

func (h *Handler) Respond(w http.ResponseWriter, resp any, statusCode int) {
	respJSON, _ := json.Marshal(resp)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(respJSON)
}

func (h *Handler) RespondError(w http.ResponseWriter, err error) {
	h.Respond(w, Resp{"error": err.Error()}, statusOf(err))
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrNotMutuals):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrAlreadyFollowing),
		errors.Is(err, service.ErrNotFollowing),
		errors.Is(err, service.ErrAlreadyReacted):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrInvalidSignUpInput),
		errors.Is(err, service.ErrInvalidPostContent),
		errors.Is(err, service.ErrAmbiguousCursor),
		errors.Is(err, service.ErrInvalidReactionType),
		errors.Is(err, service.ErrEmptyMessage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func parseCursorPagination(r *http.Request) (dto.CursorPagination, error) {
	var pagination dto.CursorPagination
	query := r.URL.Query()

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return pagination, errInvalidLimitOffset
		}
		pagination.Limit = limit
	}
	if v := query.Get("before"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return pagination, errInvalidCursor
		}
		pagination.Before = &id
	}
	if v := query.Get("after"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return pagination, errInvalidCursor
		}
		pagination.After = &id
	}

	return pagination, nil
}

func parseOffsetPagination(r *http.Request) (dto.OffsetPagination, error) {
	var pagination dto.OffsetPagination
	query := r.URL.Query()

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return pagination, errInvalidLimitOffset
		}
		pagination.Limit = limit
	}
	if v := query.Get("skip"); v != "" {
		skip, err := strconv.Atoi(v)
		if err != nil {
			return pagination, errInvalidLimitOffset
		}
		pagination.Skip = skip
	}

	return pagination, nil
}
