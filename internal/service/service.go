package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/morf1lo/social-network/internal/dto"
	"github.com/morf1lo/social-network/internal/model"
	"github.com/morf1lo/social-network/internal/rabbitmq"
	"github.com/morf1lo/social-network/internal/repository"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Auth interface {
	SignUp(ctx context.Context, input dto.SignUp) (*dto.JWTPair, error)
	SignIn(ctx context.Context, input dto.SignIn) (*dto.JWTPair, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.JWTPair, error)
}

type User interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetView(ctx context.Context, viewerID, userID uuid.UUID) (*model.UserView, error)
	SetPrivacy(ctx context.Context, id uuid.UUID, private bool) error
	GetRecommendations(ctx context.Context, viewerID uuid.UUID, pagination dto.OffsetPagination) ([]*model.UserView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Follow interface {
	Follow(ctx context.Context, followerID, followedID uuid.UUID) error
	Unfollow(ctx context.Context, followerID, followedID uuid.UUID) error
	Following(ctx context.Context, userID uuid.UUID, pagination dto.OffsetPagination) ([]*model.UserView, error)
	Followers(ctx context.Context, userID uuid.UUID, pagination dto.OffsetPagination) ([]*model.UserView, error)
	Mutuals(ctx context.Context, userID uuid.UUID, pagination dto.OffsetPagination) ([]*model.UserView, error)
}

type Post interface {
	Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePost) (*model.Post, error)
	CreateComment(ctx context.Context, authorID, parentID uuid.UUID, input dto.CreatePost) (*model.Post, error)
	Delete(ctx context.Context, userID, postID uuid.UUID) error
	GetByID(ctx context.Context, viewerID, postID uuid.UUID) (*model.Post, error)
	GetLatest(ctx context.Context, viewerID uuid.UUID, pagination dto.CursorPagination) ([]*model.Post, error)
	GetByAuthor(ctx context.Context, viewerID, authorID uuid.UUID, pagination dto.CursorPagination) ([]*model.Post, error)
	GetComments(ctx context.Context, viewerID, postID uuid.UUID, pagination dto.CursorPagination) ([]*model.Post, error)
}

type Reaction interface {
	Create(ctx context.Context, userID, postID uuid.UUID, reactionType string) (*model.Reaction, error)
	Delete(ctx context.Context, userID, reactionID uuid.UUID) error
	GetUserReactions(ctx context.Context, viewerID, userID uuid.UUID, reactionType string, limit, offset int) ([]*model.Reaction, error)
}

type Chat interface {
	RegisterConnection(userID uuid.UUID, conn *websocket.Conn) *WSConn
	UnregisterConnection(userID uuid.UUID)
	SendMessage(ctx context.Context, senderID uuid.UUID, input dto.SendMessage) (*model.Message, error)
	GetChats(ctx context.Context, userID uuid.UUID) (map[string][]*model.Message, error)
}

type Notification interface {
	RegisterConnection(userID uuid.UUID, conn *websocket.Conn)
	UnregisterConnection(userID uuid.UUID)
	GetUserNotifications(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.Notification, error)
	StartProcessingNewPostNotifications(ctx context.Context)
	StartProcessingFollowNotifications(ctx context.Context)
	StartJobs()
}

type Service struct {
	Auth
	User
	Follow
	Post
	Reaction
	Chat
	Notification
}

func New(logger *zap.Logger, repo *repository.Repository, rdb *redis.Client, rabbitmq *rabbitmq.MQConn) *Service {
	access := newAccessPolicy(repo)

	return &Service{
		Auth: newAuthService(logger, repo),
		User: newUserService(logger, repo, rdb, access),
		Follow: newFollowService(logger, repo, rabbitmq),
		Post: newPostService(logger, repo, rabbitmq, access),
		Reaction: newReactionService(logger, repo, access),
		Chat: newChatService(logger, repo),
		Notification: newNotificationService(logger, repo, rdb, rabbitmq),
	}
}
