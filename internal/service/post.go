package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/morf1lo/social-network/internal/dto"
	"github.com/morf1lo/social-network/internal/model"
	"github.com/morf1lo/social-network/internal/rabbitmq"
	"github.com/morf1lo/social-network/internal/repository"
	"go.uber.org/zap"
)

const POST_MAX_CONTENT_LENGTH = 240

type postService struct {
	logger *zap.Logger
	repo *repository.Repository
	rabbitmq *rabbitmq.MQConn
	access AccessPolicy
}

func newPostService(logger *zap.Logger, repo *repository.Repository, rabbitmq *rabbitmq.MQConn, access AccessPolicy) Post {
	return &postService{
		logger: logger,
		repo: repo,
		rabbitmq: rabbitmq,
		access: access,
	}
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePost) (*model.Post, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" || len(content) > POST_MAX_CONTENT_LENGTH {
		return nil, ErrInvalidPostContent
	}

	post := &model.Post{
		ID: uuid.New(),
		AuthorID: authorID,
		Content: content,
	}
	if err := s.repo.Postgres.Post.Create(ctx, post); err != nil {
		s.logger.Sugar().Errorf("failed to create post for user(%s): %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	s.publishPostCreated(ctx, post)

	return post, nil
}

func (s *postService) CreateComment(ctx context.Context, authorID, parentID uuid.UUID, input dto.CreatePost) (*model.Post, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" || len(content) > POST_MAX_CONTENT_LENGTH {
		return nil, ErrInvalidPostContent
	}

	// the parent must exist and be visible to the commenter
	parent, err := s.GetByID(ctx, authorID, parentID)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		ID: uuid.New(),
		AuthorID: authorID,
		Content: content,
		ParentID: &parent.ID,
	}
	if err := s.repo.Postgres.Post.Create(ctx, post); err != nil {
		s.logger.Sugar().Errorf("failed to create comment on post(%s): %s", parentID.String(), err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

func (s *postService) Delete(ctx context.Context, userID, postID uuid.UUID) error {
	post, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%s): %s", postID.String(), err.Error())
		return ErrInternal
	}

	if post.AuthorID != userID {
		return ErrForbidden
	}

	if err := s.repo.Postgres.Post.Delete(ctx, postID); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%s): %s", postID.String(), err.Error())
		return ErrInternal
	}

	return nil
}

// GetByID returns a single post. A post whose author the viewer cannot access
// is reported exactly like a missing post.
func (s *postService) GetByID(ctx context.Context, viewerID, postID uuid.UUID) (*model.Post, error) {
	post, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%s): %s", postID.String(), err.Error())
		return nil, ErrInternal
	}

	canAccess, err := s.access.CanAccess(ctx, viewerID, post.AuthorID)
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

	return post, nil
}

func (s *postService) GetLatest(ctx context.Context, viewerID uuid.UUID, pagination dto.CursorPagination) ([]*model.Post, error) {
	if pagination.Before != nil && pagination.After != nil {
		return nil, ErrAmbiguousCursor
	}

	authorIDs, err := s.visibleAuthorIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	posts, err := s.repo.Postgres.Post.PageByAuthors(ctx, authorIDs, pagination)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound // unknown cursor post
		}
		s.logger.Sugar().Errorf("failed to page latest posts for user(%s): %s", viewerID.String(), err.Error())
		return nil, ErrInternal
	}

	return posts, nil
}

func (s *postService) GetByAuthor(ctx context.Context, viewerID, authorID uuid.UUID, pagination dto.CursorPagination) ([]*model.Post, error) {
	if pagination.Before != nil && pagination.After != nil {
		return nil, ErrAmbiguousCursor
	}

	canAccess, err := s.access.CanAccess(ctx, viewerID, authorID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to check access to user(%s)'s posts: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}
	if !canAccess {
		return nil, ErrNotFound
	}

	posts, err := s.repo.Postgres.Post.PageByAuthor(ctx, authorID, pagination)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to page posts of user(%s): %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	return posts, nil
}

func (s *postService) GetComments(ctx context.Context, viewerID, postID uuid.UUID, pagination dto.CursorPagination) ([]*model.Post, error) {
	if pagination.Before != nil && pagination.After != nil {
		return nil, ErrAmbiguousCursor
	}

	// access to the thread follows access to its root post
	post, err := s.GetByID(ctx, viewerID, postID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.Postgres.Post.PageComments(ctx, post.ID, pagination)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Sugar().Errorf("failed to page comments of post(%s): %s", postID.String(), err.Error())
		return nil, ErrInternal
	}

	return comments, nil
}

// visibleAuthorIDs is the union of the viewer, the users they follow and all
// public users. It is recomputed on every request so a follow, unfollow or
// privacy change never outlives the request that observed it.
func (s *postService) visibleAuthorIDs(ctx context.Context, viewerID uuid.UUID) ([]uuid.UUID, error) {
	followed, err := s.repo.Postgres.Follow.FollowedIDs(ctx, viewerID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get user(%s)'s followed ids: %s", viewerID.String(), err.Error())
		return nil, ErrInternal
	}

	public, err := s.repo.Postgres.User.PublicUserIDs(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to get public user ids: %s", err.Error())
		return nil, ErrInternal
	}

	set := make(map[uuid.UUID]struct{}, len(followed)+len(public)+1)
	ids := make([]uuid.UUID, 0, len(followed)+len(public)+1)
	set[viewerID] = struct{}{}
	ids = append(ids, viewerID)
	for _, id := range followed {
		if _, ok := set[id]; !ok {
			set[id] = struct{}{}
			ids = append(ids, id)
		}
	}
	for _, id := range public {
		if _, ok := set[id]; !ok {
			set[id] = struct{}{}
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func (s *postService) publishPostCreated(ctx context.Context, post *model.Post) {
	if s.rabbitmq == nil {
		return
	}

	body, err := json.Marshal(dto.MQPostCreated{
		PostID: post.ID,
		AuthorID: post.AuthorID,
		CreatedAt: post.CreatedAt,
	})
	if err != nil {
		return
	}

	if err := s.rabbitmq.Publish(ctx, rabbitmq.NEW_POST_QUEUE, body); err != nil {
		s.logger.Sugar().Errorf("failed to publish post(%s) created event: %s", post.ID.String(), err.Error())
	}
}
