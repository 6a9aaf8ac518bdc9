package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/morf1lo/social-network/internal/dto"
	"github.com/morf1lo/social-network/internal/repository/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFollowService(pg *postgres.PGRepo) Follow {
	return newFollowService(zap.NewNop(), testRepo(pg), nil)
}

func TestFollow_Self(t *testing.T) {
	user := publicUser("alice")
	svc := newTestFollowService(&postgres.PGRepo{
		User: newFakeUserRepo(user),
		Follow: newFakeFollowRepo(),
	})

	err := svc.Follow(context.Background(), user.ID, user.ID)
	assert.ErrorIs(t, err, ErrSelfFollow)
}

func TestFollow_UnknownTarget(t *testing.T) {
	user := publicUser("alice")
	svc := newTestFollowService(&postgres.PGRepo{
		User: newFakeUserRepo(user),
		Follow: newFakeFollowRepo(),
	})

	err := svc.Follow(context.Background(), user.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFollow_Duplicate(t *testing.T) {
	alice := publicUser("alice")
	bob := publicUser("bob")
	svc := newTestFollowService(&postgres.PGRepo{
		User: newFakeUserRepo(alice, bob),
		Follow: newFakeFollowRepo(),
	})
	ctx := context.Background()

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	err := svc.Follow(ctx, alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrAlreadyFollowing)
}

func TestUnfollow_NotFollowing(t *testing.T) {
	alice := publicUser("alice")
	bob := publicUser("bob")
	svc := newTestFollowService(&postgres.PGRepo{
		User: newFakeUserRepo(alice, bob),
		Follow: newFakeFollowRepo(),
	})

	err := svc.Unfollow(context.Background(), alice.ID, bob.ID)
	assert.ErrorIs(t, err, ErrNotFollowing)
}

func TestFollowLists(t *testing.T) {
	alice := publicUser("alice")
	bob := publicUser("bob")
	carol := publicUser("carol")
	svc := newTestFollowService(&postgres.PGRepo{
		User: newFakeUserRepo(alice, bob, carol),
		Follow: newFakeFollowRepo(
			followEdge{follower: alice.ID, followed: bob.ID},
			followEdge{follower: carol.ID, followed: bob.ID},
		),
	})
	ctx := context.Background()

	following, err := svc.Following(ctx, alice.ID, dto.OffsetPagination{})
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, bob.ID, following[0].ID)

	followers, err := svc.Followers(ctx, bob.ID, dto.OffsetPagination{})
	require.NoError(t, err)
	assert.Len(t, followers, 2)

	followers, err = svc.Followers(ctx, alice.ID, dto.OffsetPagination{})
	require.NoError(t, err)
	assert.Empty(t, followers)
}

func TestMutuals(t *testing.T) {
	alice := publicUser("alice")
	bob := publicUser("bob")
	carol := publicUser("carol")
	svc := newTestFollowService(&postgres.PGRepo{
		User: newFakeUserRepo(alice, bob, carol),
		Follow: newFakeFollowRepo(
			followEdge{follower: alice.ID, followed: bob.ID},
			followEdge{follower: bob.ID, followed: alice.ID},
			followEdge{follower: alice.ID, followed: carol.ID},
		),
	})

	mutuals, err := svc.Mutuals(context.Background(), alice.ID, dto.OffsetPagination{})
	require.NoError(t, err)
	require.Len(t, mutuals, 1, "a one-directional follow is not a mutual")
	assert.Equal(t, bob.ID, mutuals[0].ID)
}
