package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/morf1lo/social-network/internal/dto"
	"github.com/morf1lo/social-network/internal/model"
	"github.com/morf1lo/social-network/internal/repository"
	"go.uber.org/zap"
)

type chatService struct {
	logger *zap.Logger
	repo *repository.Repository

	conns *sync.Map
	deliveryChan chan model.MessageDelivery
}

func newChatService(logger *zap.Logger, repo *repository.Repository) Chat {
	s := &chatService{
		logger: logger,
		repo: repo,
		conns: &sync.Map{},
		deliveryChan: make(chan model.MessageDelivery, 1000),
	}

	for range 5 {
		go s.deliveryWorker()
	}

	return s
}

func (s *chatService) deliveryWorker() {
	for msg := range s.deliveryChan {
		val, ok := s.conns.Load(msg.RecipientID)
		if !ok {
			continue
		}

		conn, ok := val.(*WSConn)
		if !ok {
			continue
		}

		if err := conn.WriteJSON(msg.Message); err != nil {
			s.logger.Sugar().Errorf("failed to write message to recipient(%s)'s conn: %s", msg.RecipientID.String(), err.Error())
		}
	}
}

// RegisterConnection stores the connection and returns the write-serialized
// handle; all writes to the connection must go through it.
func (s *chatService) RegisterConnection(userID uuid.UUID, conn *websocket.Conn) *WSConn {
	client := newWSConn(conn)
	s.conns.Store(userID, client)
	return client
}

func (s *chatService) UnregisterConnection(userID uuid.UUID) {
	if val, ok := s.conns.Load(userID); ok {
		if conn, ok := val.(*WSConn); ok {
			conn.Close()
		}
		s.conns.Delete(userID)
	}
}

// SendMessage persists a direct message and queues delivery to the recipient
// if they are connected. Messaging is restricted to mutual followers.
func (s *chatService) SendMessage(ctx context.Context, senderID uuid.UUID, input dto.SendMessage) (*model.Message, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	if err := s.checkMutuals(ctx, senderID, input.To); err != nil {
		return nil, err
	}

	message := &model.Message{
		ID: uuid.New(),
		SenderID: senderID,
		RecipientID: input.To,
		Content: content,
	}
	if err := s.repo.Postgres.Message.Create(ctx, message); err != nil {
		s.logger.Sugar().Errorf("failed to save message from user(%s): %s", senderID.String(), err.Error())
		return nil, ErrInternal
	}

	s.deliveryChan <- model.MessageDelivery{RecipientID: input.To, Message: message}

	return message, nil
}

// GetChats returns the user's message history grouped by peer id.
func (s *chatService) GetChats(ctx context.Context, userID uuid.UUID) (map[string][]*model.Message, error) {
	messages, err := s.repo.Postgres.Message.FindByUser(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get user(%s)'s messages: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	chats := make(map[string][]*model.Message)
	for _, message := range messages {
		peer := message.SenderID
		if peer == userID {
			peer = message.RecipientID
		}
		chats[peer.String()] = append(chats[peer.String()], message)
	}

	return chats, nil
}

func (s *chatService) checkMutuals(ctx context.Context, senderID, recipientID uuid.UUID) error {
	if senderID == recipientID {
		return ErrNotMutuals
	}

	follows, err := s.repo.Postgres.Follow.Exists(ctx, senderID, recipientID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check follow(%s -> %s): %s", senderID.String(), recipientID.String(), err.Error())
		return ErrInternal
	}
	followedBack, err := s.repo.Postgres.Follow.Exists(ctx, recipientID, senderID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to check follow(%s -> %s): %s", recipientID.String(), senderID.String(), err.Error())
		return ErrInternal
	}

	if !follows || !followedBack {
		return ErrNotMutuals
	}

	return nil
}
