package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/morf1lo/social-network/internal/dto"
	"github.com/morf1lo/social-network/internal/model"
	"github.com/morf1lo/social-network/internal/rabbitmq"
	"github.com/morf1lo/social-network/internal/repository"
	"go.uber.org/zap"
)

type followService struct {
	logger *zap.Logger
	repo *repository.Repository
	rabbitmq *rabbitmq.MQConn
}

func newFollowService(logger *zap.Logger, repo *repository.Repository, rabbitmq *rabbitmq.MQConn) Follow {
	return &followService{
		logger: logger,
		repo: repo,
		rabbitmq: rabbitmq,
	}
}

func (s *followService) Follow(ctx context.Context, followerID, followedID uuid.UUID) error {
	if followerID == followedID {
		return ErrSelfFollow
	}

	// resolve the target first so following an unknown user is a 404, not a FK error
	if _, err := s.repo.Postgres.User.IsPrivate(ctx, followedID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to resolve user(%s): %s", followedID.String(), err.Error())
		return ErrInternal
	}

	created, err := s.repo.Postgres.Follow.Create(ctx, followerID, followedID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create follow(%s -> %s): %s", followerID.String(), followedID.String(), err.Error())
		return ErrInternal
	}
	if !created {
		return ErrAlreadyFollowing
	}

	s.publishFollow(ctx, followedID, followerID)

	return nil
}

func (s *followService) Unfollow(ctx context.Context, followerID, followedID uuid.UUID) error {
	deleted, err := s.repo.Postgres.Follow.Delete(ctx, followerID, followedID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to delete follow(%s -> %s): %s", followerID.String(), followedID.String(), err.Error())
		return ErrInternal
	}
	if !deleted {
		return ErrNotFollowing
	}

	return nil
}

func (s *followService) Following(ctx context.Context, userID uuid.UUID, pagination dto.OffsetPagination) ([]*model.UserView, error) {
	ids, err := s.repo.Postgres.Follow.FollowedIDs(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get user(%s)'s followed ids: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return s.views(ctx, ids, pagination)
}

func (s *followService) Followers(ctx context.Context, userID uuid.UUID, pagination dto.OffsetPagination) ([]*model.UserView, error) {
	ids, err := s.repo.Postgres.Follow.FollowerIDs(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get user(%s)'s follower ids: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return s.views(ctx, ids, pagination)
}

// Mutuals lists the users the given user follows who follow them back.
// These are the only users messages can be exchanged with.
func (s *followService) Mutuals(ctx context.Context, userID uuid.UUID, pagination dto.OffsetPagination) ([]*model.UserView, error) {
	ids, err := s.repo.Postgres.Follow.MutualIDs(ctx, userID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get user(%s)'s mutual ids: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return s.views(ctx, ids, pagination)
}

func (s *followService) views(ctx context.Context, ids []uuid.UUID, pagination dto.OffsetPagination) ([]*model.UserView, error) {
	if len(ids) == 0 {
		return []*model.UserView{}, nil
	}

	views, err := s.repo.Postgres.User.FindViewsByIDs(ctx, ids, pagination)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get user views: %s", err.Error())
		return nil, ErrInternal
	}

	return views, nil
}

// publishFollow emits the follow event for the notification consumer.
// Delivery is best-effort.
func (s *followService) publishFollow(ctx context.Context, userID, followerID uuid.UUID) {
	if s.rabbitmq == nil {
		return
	}

	body, err := json.Marshal(dto.MQFollow{UserID: userID, FollowerID: followerID})
	if err != nil {
		return
	}

	if err := s.rabbitmq.Publish(ctx, rabbitmq.FOLLOWS_QUEUE, body); err != nil {
		s.logger.Sugar().Errorf("failed to publish follow(%s -> %s) event: %s", followerID.String(), userID.String(), err.Error())
	}
}
