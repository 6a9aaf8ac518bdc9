package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/morf1lo/social-network/internal/model"
	"github.com/morf1lo/social-network/internal/repository/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestReactionService(pg *postgres.PGRepo) Reaction {
	repo := testRepo(pg)
	return newReactionService(zap.NewNop(), repo, newAccessPolicy(repo))
}

func TestReactionCreate_InvalidType(t *testing.T) {
	svc := newTestReactionService(&postgres.PGRepo{Reaction: newFakeReactionRepo()})

	_, err := svc.Create(context.Background(), uuid.New(), uuid.New(), "dislike")
	assert.ErrorIs(t, err, ErrInvalidReactionType)
}

func TestReactionCreate_RequiresVisiblePost(t *testing.T) {
	author := privateUser("alice")
	viewer := publicUser("bob")
	post := &model.Post{ID: uuid.New(), AuthorID: author.ID, Content: "secret"}

	svc := newTestReactionService(&postgres.PGRepo{
		User: newFakeUserRepo(author, viewer),
		Follow: newFakeFollowRepo(),
		Post: newFakePostRepo(post),
		Reaction: newFakeReactionRepo(),
	})

	_, err := svc.Create(context.Background(), viewer.ID, post.ID, model.ReactionLike)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReactionCreate_Duplicate(t *testing.T) {
	author := publicUser("alice")
	viewer := publicUser("bob")
	post := &model.Post{ID: uuid.New(), AuthorID: author.ID, Content: "hello"}

	svc := newTestReactionService(&postgres.PGRepo{
		User: newFakeUserRepo(author, viewer),
		Follow: newFakeFollowRepo(),
		Post: newFakePostRepo(post),
		Reaction: newFakeReactionRepo(),
	})
	ctx := context.Background()

	reaction, err := svc.Create(ctx, viewer.ID, post.ID, model.ReactionLike)
	require.NoError(t, err)
	assert.Equal(t, model.ReactionLike, reaction.Type)

	_, err = svc.Create(ctx, viewer.ID, post.ID, model.ReactionLike)
	assert.ErrorIs(t, err, ErrAlreadyReacted)

	// a like and a retweet on the same post are distinct reactions
	_, err = svc.Create(ctx, viewer.ID, post.ID, model.ReactionRetweet)
	assert.NoError(t, err)
}

func TestReactionCreate_DuplicateRace(t *testing.T) {
	author := publicUser("alice")
	viewer := publicUser("bob")
	post := &model.Post{ID: uuid.New(), AuthorID: author.ID, Content: "hello"}

	// the existence check sees nothing but the insert hits the unique
	// constraint, as happens when two identical requests race
	reactions := newFakeReactionRepo()
	reactions.createErr = &pgconn.PgError{Code: "23505"}

	svc := newTestReactionService(&postgres.PGRepo{
		User: newFakeUserRepo(author, viewer),
		Follow: newFakeFollowRepo(),
		Post: newFakePostRepo(post),
		Reaction: reactions,
	})

	_, err := svc.Create(context.Background(), viewer.ID, post.ID, model.ReactionLike)
	assert.ErrorIs(t, err, ErrAlreadyReacted)
}

func TestReactionDelete_OnlyOwner(t *testing.T) {
	owner := uuid.New()
	reaction := &model.Reaction{ID: uuid.New(), Type: model.ReactionLike, UserID: owner, PostID: uuid.New()}
	svc := newTestReactionService(&postgres.PGRepo{Reaction: newFakeReactionRepo(reaction)})
	ctx := context.Background()

	err := svc.Delete(ctx, uuid.New(), reaction.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	require.NoError(t, svc.Delete(ctx, owner, reaction.ID))

	err = svc.Delete(ctx, owner, reaction.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetUserReactions_AccessGated(t *testing.T) {
	owner := privateUser("alice")
	viewer := publicUser("bob")
	svc := newTestReactionService(&postgres.PGRepo{
		User: newFakeUserRepo(owner, viewer),
		Follow: newFakeFollowRepo(),
		Reaction: newFakeReactionRepo(),
	})

	_, err := svc.GetUserReactions(context.Background(), viewer.ID, owner.ID, model.ReactionLike, 10, 0)
	assert.ErrorIs(t, err, ErrNotFound)
}
