package service

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/morf1lo/social-network/internal/dto"
	"github.com/morf1lo/social-network/internal/model"
	"github.com/morf1lo/social-network/internal/repository/postgres"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestChatService(pg *postgres.PGRepo) Chat {
	return newChatService(zap.NewNop(), testRepo(pg))
}

func TestSendMessage_Empty(t *testing.T) {
	svc := newTestChatService(&postgres.PGRepo{
		Follow: newFakeFollowRepo(),
		Message: &fakeMessageRepo{},
	})

	_, err := svc.SendMessage(context.Background(), uuid.New(), dto.SendMessage{To: uuid.New(), Content: "  "})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestSendMessage_RequiresMutualFollow(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	follows := newFakeFollowRepo(followEdge{follower: alice, followed: bob})
	svc := newTestChatService(&postgres.PGRepo{
		Follow: follows,
		Message: &fakeMessageRepo{},
	})
	ctx := context.Background()

	// one-directional follow isn't enough
	_, err := svc.SendMessage(ctx, alice, dto.SendMessage{To: bob, Content: "hi"})
	assert.ErrorIs(t, err, ErrNotMutuals)

	_, err = follows.Create(ctx, bob, alice)
	require.NoError(t, err)

	msg, err := svc.SendMessage(ctx, alice, dto.SendMessage{To: bob, Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, alice, msg.SenderID)
	assert.Equal(t, bob, msg.RecipientID)
}

func TestSendMessage_Self(t *testing.T) {
	id := uuid.New()
	svc := newTestChatService(&postgres.PGRepo{
		Follow: newFakeFollowRepo(),
		Message: &fakeMessageRepo{},
	})

	_, err := svc.SendMessage(context.Background(), id, dto.SendMessage{To: id, Content: "hi"})
	assert.ErrorIs(t, err, ErrNotMutuals)
}

// Several delivery workers drain one queue, so a burst of messages to a
// single recipient makes them write to the same connection at the same time.
func TestDelivery_BurstToOneRecipient(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	svc := newTestChatService(&postgres.PGRepo{
		Follow: newFakeFollowRepo(
			followEdge{follower: alice, followed: bob},
			followEdge{follower: bob, followed: alice},
		),
		Message: &fakeMessageRepo{},
	})

	registered := make(chan struct{})
	var up websocket.Upgrader
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		if err != nil {
			t.Error(err)
			return
		}
		svc.RegisterConnection(bob, conn)
		close(registered)
	}))
	defer srv.Close()

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer client.Close()
	<-registered

	ctx := context.Background()
	const n = 20
	for i := range n {
		_, err := svc.SendMessage(ctx, alice, dto.SendMessage{To: bob, Content: fmt.Sprintf("msg %d", i)})
		require.NoError(t, err)
	}

	client.SetReadDeadline(time.Now().Add(time.Second * 5))
	got := make(map[string]struct{}, n)
	for range n {
		var msg model.Message
		require.NoError(t, client.ReadJSON(&msg))
		got[msg.Content] = struct{}{}
	}
	assert.Len(t, got, n, "every queued delivery reaches the recipient exactly once")
}

func TestGetChats_GroupsByPeer(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	carol := uuid.New()
	follows := newFakeFollowRepo(
		followEdge{follower: alice, followed: bob},
		followEdge{follower: bob, followed: alice},
		followEdge{follower: alice, followed: carol},
		followEdge{follower: carol, followed: alice},
	)
	svc := newTestChatService(&postgres.PGRepo{
		Follow: follows,
		Message: &fakeMessageRepo{},
	})
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, alice, dto.SendMessage{To: bob, Content: "hey bob"})
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, bob, dto.SendMessage{To: alice, Content: "hey alice"})
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, alice, dto.SendMessage{To: carol, Content: "hey carol"})
	require.NoError(t, err)

	chats, err := svc.GetChats(ctx, alice)
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Len(t, chats[bob.String()], 2)
	assert.Len(t, chats[carol.String()], 1)
}
