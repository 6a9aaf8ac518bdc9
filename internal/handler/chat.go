package handler

import (
	"net/http"

	"github.com/morf1lo/social-network/internal/dto"
	"github.com/morf1lo/social-network/internal/model"
)

func (h *Handler) chatGetChats(user *model.User, w http.ResponseWriter, r *http.Request) {
	chats, err := h.services.Chat.GetChats(r.Context(), user.ID)
	if err != nil {
		h.RespondError(w, err)
		return
	}

	h.Respond(w, chats, http.StatusOK)
}

func (h *Handler) chatWS(user *model.User, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	client := h.services.Chat.RegisterConnection(user.ID, conn)

	// The read loop runs on the request goroutine: the connection lives
	// until the client goes away. Writes go through the registered handle,
	// which shares its lock with the delivery workers.
	for {
		var input dto.SendMessage
		if err := conn.ReadJSON(&input); err != nil {
			h.services.Chat.UnregisterConnection(user.ID)
			return
		}

		msg, err := h.services.Chat.SendMessage(r.Context(), user.ID, input)
		if err != nil {
			client.WriteJSON(Resp{"error": err.Error()})
			continue
		}

		client.WriteJSON(msg)
	}
}
