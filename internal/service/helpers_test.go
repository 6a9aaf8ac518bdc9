package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/morf1lo/social-network/internal/dto"
	"github.com/morf1lo/social-network/internal/model"
	"github.com/morf1lo/social-network/internal/repository"
	"github.com/morf1lo/social-network/internal/repository/postgres"
)

// In-memory repository fakes. Each embeds the repository interface so only
// the methods a test actually exercises need an implementation; calling an
// unimplemented one panics, which is exactly what we want in a test.

type fakeUserRepo struct {
	postgres.User
	mu sync.Mutex
	users map[uuid.UUID]*model.User
	findCalls int
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	m := make(map[uuid.UUID]*model.User, len(users))
	for _, u := range users {
		m[u.ID] = u
	}
	return &fakeUserRepo{users: m}
}

func (f *fakeUserRepo) Create(ctx context.Context, user model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = &user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.findCalls++
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) FindByUsernameOrEmail(ctx context.Context, username string, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) SetPrivacy(ctx context.Context, id uuid.UUID, private bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Private = private
	return nil
}

func (f *fakeUserRepo) IsPrivate(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return false, pgx.ErrNoRows
	}
	return user.Private, nil
}

func (f *fakeUserRepo) PublicUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []uuid.UUID
	for _, u := range f.users {
		if !u.Private {
			ids = append(ids, u.ID)
		}
	}
	return ids, nil
}

func (f *fakeUserRepo) FindViewsByIDs(ctx context.Context, ids []uuid.UUID, pagination dto.OffsetPagination) ([]*model.UserView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var views []*model.UserView
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			views = append(views, u.View())
		}
	}
	return views, nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

type followEdge struct {
	follower uuid.UUID
	followed uuid.UUID
}

type fakeFollowRepo struct {
	postgres.Follow
	mu sync.Mutex
	edges []followEdge
	// followedErr injects a failure into FollowedIDs for the given user.
	followedErr map[uuid.UUID]error
}

func newFakeFollowRepo(edges ...followEdge) *fakeFollowRepo {
	return &fakeFollowRepo{edges: edges}
}

func (f *fakeFollowRepo) Create(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.edges {
		if e.follower == followerID && e.followed == followedID {
			return false, nil
		}
	}
	f.edges = append(f.edges, followEdge{follower: followerID, followed: followedID})
	return true, nil
}

func (f *fakeFollowRepo) Delete(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.edges {
		if e.follower == followerID && e.followed == followedID {
			f.edges = append(f.edges[:i], f.edges[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFollowRepo) Exists(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.edges {
		if e.follower == followerID && e.followed == followedID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFollowRepo) FollowedIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.followedErr[followerID]; ok {
		return nil, err
	}
	var ids []uuid.UUID
	for _, e := range f.edges {
		if e.follower == followerID {
			ids = append(ids, e.followed)
		}
	}
	return ids, nil
}

func (f *fakeFollowRepo) FollowerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []uuid.UUID
	for _, e := range f.edges {
		if e.followed == userID {
			ids = append(ids, e.follower)
		}
	}
	return ids, nil
}

func (f *fakeFollowRepo) MutualIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	back := make(map[uuid.UUID]struct{})
	for _, e := range f.edges {
		if e.followed == userID {
			back[e.follower] = struct{}{}
		}
	}
	var ids []uuid.UUID
	for _, e := range f.edges {
		if e.follower == userID {
			if _, ok := back[e.followed]; ok {
				ids = append(ids, e.followed)
			}
		}
	}
	return ids, nil
}

type fakePostRepo struct {
	postgres.Post
	mu sync.Mutex
	posts map[uuid.UUID]*model.Post
	// lastAuthorIDs records the author set of the latest PageByAuthors call.
	lastAuthorIDs []uuid.UUID
}

func newFakePostRepo(posts ...*model.Post) *fakePostRepo {
	m := make(map[uuid.UUID]*model.Post, len(posts))
	for _, p := range posts {
		m[p.ID] = p
	}
	return &fakePostRepo{posts: m}
}

func (f *fakePostRepo) Create(ctx context.Context, post *model.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post.CreatedAt = time.Now()
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	post, ok := f.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return post, nil
}

func (f *fakePostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) PageByAuthors(ctx context.Context, authorIDs []uuid.UUID, pagination dto.CursorPagination) ([]*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastAuthorIDs = authorIDs
	allowed := make(map[uuid.UUID]struct{}, len(authorIDs))
	for _, id := range authorIDs {
		allowed[id] = struct{}{}
	}
	var posts []*model.Post
	for _, p := range f.posts {
		if _, ok := allowed[p.AuthorID]; ok && !p.IsComment() {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (f *fakePostRepo) PageByAuthor(ctx context.Context, authorID uuid.UUID, pagination dto.CursorPagination) ([]*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var posts []*model.Post
	for _, p := range f.posts {
		if p.AuthorID == authorID {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (f *fakePostRepo) PageComments(ctx context.Context, parentID uuid.UUID, pagination dto.CursorPagination) ([]*model.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var posts []*model.Post
	for _, p := range f.posts {
		if p.ParentID != nil && *p.ParentID == parentID {
			posts = append(posts, p)
		}
	}
	return posts, nil
}

type fakeReactionRepo struct {
	postgres.Reaction
	mu sync.Mutex
	reactions map[uuid.UUID]*model.Reaction
	createErr error
}

func newFakeReactionRepo(reactions ...*model.Reaction) *fakeReactionRepo {
	m := make(map[uuid.UUID]*model.Reaction, len(reactions))
	for _, r := range reactions {
		m[r.ID] = r
	}
	return &fakeReactionRepo{reactions: m}
}

func (f *fakeReactionRepo) Create(ctx context.Context, reaction *model.Reaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	reaction.CreatedAt = time.Now()
	f.reactions[reaction.ID] = reaction
	return nil
}

func (f *fakeReactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Reaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reaction, ok := f.reactions[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return reaction, nil
}

func (f *fakeReactionRepo) FindByUserAndPost(ctx context.Context, userID, postID uuid.UUID, reactionType string) (*model.Reaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reactions {
		if r.UserID == userID && r.PostID == postID && r.Type == reactionType {
			return r, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeReactionRepo) FindByUserAndType(ctx context.Context, userID uuid.UUID, reactionType string, limit, offset int) ([]*model.Reaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var reactions []*model.Reaction
	for _, r := range f.reactions {
		if r.UserID == userID && r.Type == reactionType {
			reactions = append(reactions, r)
		}
	}
	return reactions, nil
}

func (f *fakeReactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.reactions, id)
	return nil
}

type fakeMessageRepo struct {
	postgres.Message
	mu sync.Mutex
	messages []*model.Message
}

func (f *fakeMessageRepo) Create(ctx context.Context, message *model.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	message.CreatedAt = time.Now()
	f.messages = append(f.messages, message)
	return nil
}

func (f *fakeMessageRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var messages []*model.Message
	for _, m := range f.messages {
		if m.SenderID == userID || m.RecipientID == userID {
			messages = append(messages, m)
		}
	}
	return messages, nil
}

func testRepo(pg *postgres.PGRepo) *repository.Repository {
	return &repository.Repository{Postgres: pg}
}

func publicUser(username string) *model.User {
	displayName := username
	return &model.User{
		ID: uuid.New(),
		Username: username,
		Email: username + "@example.com",
		DisplayName: &displayName,
		CreatedAt: time.Now(),
	}
}

func privateUser(username string) *model.User {
	u := publicUser(username)
	u.Private = true
	return u
}
