package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/morf1lo/social-network/internal/model"
	"github.com/morf1lo/social-network/internal/repository"
	"go.uber.org/zap"
)

type reactionService struct {
	logger *zap.Logger
	repo *repository.Repository
	access AccessPolicy
}

func newReactionService(logger *zap.Logger, repo *repository.Repository, access AccessPolicy) Reaction {
	return &reactionService{
		logger: logger,
		repo: repo,
		access: access,
	}
}

func (s *reactionService) Create(ctx context.Context, userID, postID uuid.UUID, reactionType string) (*model.Reaction, error) {
	if reactionType != model.ReactionLike && reactionType != model.ReactionRetweet {
		return nil, ErrInvalidReactionType
	}

	// you can only react to a post you can see
	post, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%s): %s", postID.String(), err.Error())
		return nil, ErrInternal
	}

	canAccess, err := s.access.CanAccess(ctx, userID, post.AuthorID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to check access to post(%s): %s", postID.String(), err.Error())
		return nil, ErrInternal
	}
	if !canAccess {
		return nil, ErrNotFound
	}

	_, err = s.repo.Postgres.Reaction.FindByUserAndPost(ctx, userID, postID, reactionType)
	if err == nil {
		return nil, ErrAlreadyReacted
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		s.logger.Sugar().Errorf("failed to check existing reaction on post(%s): %s", postID.String(), err.Error())
		return nil, ErrInternal
	}

	reaction := &model.Reaction{
		ID: uuid.New(),
		Type: reactionType,
		UserID: userID,
		PostID: postID,
	}
	if err := s.repo.Postgres.Reaction.Create(ctx, reaction); err != nil {
		// a concurrent insert can slip past the existence check above;
		// the unique constraint on (user_id, post_id, type) settles it
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyReacted
		}
		s.logger.Sugar().Errorf("failed to create reaction on post(%s): %s", postID.String(), err.Error())
		return nil, ErrInternal
	}

	return reaction, nil
}

func (s *reactionService) Delete(ctx context.Context, userID, reactionID uuid.UUID) error {
	reaction, err := s.repo.Postgres.Reaction.FindByID(ctx, reactionID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find reaction(%s): %s", reactionID.String(), err.Error())
		return ErrInternal
	}

	if reaction.UserID != userID {
		return ErrForbidden
	}

	if err := s.repo.Postgres.Reaction.Delete(ctx, reactionID); err != nil {
		s.logger.Sugar().Errorf("failed to delete reaction(%s): %s", reactionID.String(), err.Error())
		return ErrInternal
	}

	return nil
}

func (s *reactionService) GetUserReactions(ctx context.Context, viewerID, userID uuid.UUID, reactionType string, limit, offset int) ([]*model.Reaction, error) {
	if reactionType != model.ReactionLike && reactionType != model.ReactionRetweet {
		return nil, ErrInvalidReactionType
	}

	canAccess, err := s.access.CanAccess(ctx, viewerID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to check access to user(%s)'s reactions: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}
	if !canAccess {
		return nil, ErrNotFound
	}

	reactions, err := s.repo.Postgres.Reaction.FindByUserAndType(ctx, userID, reactionType, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get user(%s)'s reactions: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return reactions, nil
}
