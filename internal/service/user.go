package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/morf1lo/social-network/internal/dto"
	"github.com/morf1lo/social-network/internal/model"
	"github.com/morf1lo/social-network/internal/repository"
	"github.com/morf1lo/social-network/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const USER_CACHE_TTL = time.Minute * 2

type userService struct {
	logger *zap.Logger
	repo *repository.Repository
	rdb *redis.Client
	access AccessPolicy
}

func newUserService(logger *zap.Logger, repo *repository.Repository, rdb *redis.Client, access AccessPolicy) User {
	return &userService{
		logger: logger,
		repo: repo,
		rdb: rdb,
		access: access,
	}
}

func (s *userService) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	userCache, err := redisrepo.Get[model.User](s.rdb, ctx, redisrepo.UserKey(id.String()))
	if err == nil {
		return userCache, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get user(%s) from redis: %s", id.String(), err.Error())
	}

	user, err := s.repo.Postgres.User.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to get user(%s) from postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if err := redisrepo.SetJSON(s.rdb, ctx, redisrepo.UserKey(id.String()), user, USER_CACHE_TTL); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s) in redis cache: %s", id.String(), err.Error())
	}

	return user, nil
}

// GetView returns the public projection of a user. A private profile is
// reported as not found to viewers who don't follow it, same as posts.
func (s *userService) GetView(ctx context.Context, viewerID, userID uuid.UUID) (*model.UserView, error) {
	canAccess, err := s.access.CanAccess(ctx, viewerID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to check access to user(%s): %s", userID.String(), err.Error())
		return nil, ErrInternal
	}
	if !canAccess {
		return nil, ErrNotFound
	}

	user, err := s.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return user.View(), nil
}

func (s *userService) SetPrivacy(ctx context.Context, id uuid.UUID, private bool) error {
	if err := s.repo.Postgres.User.SetPrivacy(ctx, id, private); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to set privacy for user(%s): %s", id.String(), err.Error())
		return ErrInternal
	}

	// the cached profile is stale now
	if err := redisrepo.Delete(s.rdb, ctx, redisrepo.UserKey(id.String())); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate user(%s) cache: %s", id.String(), err.Error())
	}

	return nil
}

// GetRecommendations suggests users two hops away in the follow graph.
// Second-hop lookups run concurrently; a failure in any of them fails the
// whole request so the candidate set is never silently biased.
func (s *userService) GetRecommendations(ctx context.Context, viewerID uuid.UUID, pagination dto.OffsetPagination) ([]*model.UserView, error) {
	direct, err := s.repo.Postgres.Follow.FollowedIDs(ctx, viewerID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get user(%s)'s followed ids: %s", viewerID.String(), err.Error())
		return nil, ErrInternal
	}
	if len(direct) == 0 {
		return []*model.UserView{}, nil
	}

	secondHop := make([][]uuid.UUID, len(direct))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range direct {
		g.Go(func() error {
			ids, err := s.repo.Postgres.Follow.FollowedIDs(gctx, id)
			if err != nil {
				return err
			}
			secondHop[i] = ids
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Sugar().Errorf("failed to get second-hop follows for user(%s): %s", viewerID.String(), err.Error())
		return nil, ErrInternal
	}

	exclude := make(map[uuid.UUID]struct{}, len(direct)+1)
	exclude[viewerID] = struct{}{}
	for _, id := range direct {
		exclude[id] = struct{}{}
	}

	seen := make(map[uuid.UUID]struct{})
	var candidates []uuid.UUID
	for _, ids := range secondHop {
		for _, id := range ids {
			if _, ok := exclude[id]; ok {
				continue
			}
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return []*model.UserView{}, nil
	}

	views, err := s.repo.Postgres.User.FindViewsByIDs(ctx, candidates, pagination)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get recommended user views for user(%s): %s", viewerID.String(), err.Error())
		return nil, ErrInternal
	}

	return views, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Postgres.User.Delete(ctx, id); err != nil {
		s.logger.Sugar().Errorf("failed to delete user(%s): %s", id.String(), err.Error())
		return ErrInternal
	}

	if err := redisrepo.Delete(s.rdb, ctx, redisrepo.UserKey(id.String())); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate user(%s) cache: %s", id.String(), err.Error())
	}

	return nil
}
