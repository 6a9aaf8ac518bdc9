package handler

import (
	"net/http"

	"github.com/morf1lo/social-network/internal/model"
)

func (h *Handler) notificationsGet(user *model.User, w http.ResponseWriter, r *http.Request) {
	pagination, err := parseOffsetPagination(r)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	notifications, err := h.services.Notification.GetUserNotifications(r.Context(), user.ID, pagination.Limit, pagination.Skip)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, notifications, http.StatusOK)
}

func (h *Handler) notificationsWS(user *model.User, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	h.services.Notification.RegisterConnection(user.ID, conn)
}
