package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/morf1lo/social-network/internal/config"
	"github.com/morf1lo/social-network/internal/dto"
	"github.com/morf1lo/social-network/internal/model"
)

type User interface {
	Create(ctx context.Context, user model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByUsernameOrEmail(ctx context.Context, username string, email string) (*model.User, error)
	SetPrivacy(ctx context.Context, id uuid.UUID, private bool) error
	IsPrivate(ctx context.Context, id uuid.UUID) (bool, error)
	PublicUserIDs(ctx context.Context) ([]uuid.UUID, error)
	FindViewsByIDs(ctx context.Context, ids []uuid.UUID, pagination dto.OffsetPagination) ([]*model.UserView, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Follow interface {
	Create(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	Delete(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	Exists(ctx context.Context, followerID, followedID uuid.UUID) (bool, error)
	FollowedIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error)
	FollowerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	MutualIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type Post interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	PageByAuthors(ctx context.Context, authorIDs []uuid.UUID, pagination dto.CursorPagination) ([]*model.Post, error)
	PageByAuthor(ctx context.Context, authorID uuid.UUID, pagination dto.CursorPagination) ([]*model.Post, error)
	PageComments(ctx context.Context, parentID uuid.UUID, pagination dto.CursorPagination) ([]*model.Post, error)
}

type Reaction interface {
	Create(ctx context.Context, reaction *model.Reaction) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Reaction, error)
	FindByUserAndPost(ctx context.Context, userID, postID uuid.UUID, reactionType string) (*model.Reaction, error)
	FindByUserAndType(ctx context.Context, userID uuid.UUID, reactionType string, limit, offset int) ([]*model.Reaction, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type Message interface {
	Create(ctx context.Context, message *model.Message) error
	FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.Message, error)
}

type Notification interface {
	CreateBatched(ctx context.Context, notifications []model.Notification, batchSize int) error
	GetUserNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Notification, error)
	DeleteOldNotifications(ctx context.Context) error
}

type PGRepo struct {
	User
	Follow
	Post
	Reaction
	Message
	Notification
}

func New(db *pgxpool.Pool) *PGRepo {
	return &PGRepo{
		User: newUserRepo(db),
		Follow: newFollowRepo(db),
		Post: newPostRepo(db),
		Reaction: newReactionRepo(db),
		Message: newMessageRepo(db),
		Notification: newNotificationRepo(db),
	}
}

func Connect(ctx context.Context, cfg config.DBConfig) (*pgxpool.Pool, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.DBName, cfg.SSLMode,
	)
	return pgxpool.New(ctx, dsn)
}
