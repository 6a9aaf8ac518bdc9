package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/morf1lo/social-network/internal/dto"
	"github.com/morf1lo/social-network/internal/model"
)

const (
	GET_POSTS_DEFAULT_LIMIT = 20
	GET_POSTS_MAX_LIMIT     = 50
)

type postRepo struct {
	db *pgxpool.Pool
}

func newPostRepo(db *pgxpool.Pool) Post {
	return &postRepo{
		db: db,
	}
}

func (r *postRepo) Create(ctx context.Context, post *model.Post) error {
	return r.db.QueryRow(
		ctx,
		"INSERT INTO posts(id, author_id, content, parent_id) VALUES($1, $2, $3, $4) RETURNING created_at",
		post.ID, post.AuthorID, post.Content, post.ParentID,
	).Scan(&post.CreatedAt)
}

func (r *postRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Post, error) {
	var post model.Post
	if err := r.db.QueryRow(
		ctx,
		postSelect+" WHERE p.id = $1",
		id,
	).Scan(
		&post.ID,
		&post.AuthorID,
		&post.Content,
		&post.ParentID,
		&post.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &post, nil
}

func (r *postRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	return err
}

func (r *postRepo) PageByAuthors(ctx context.Context, authorIDs []uuid.UUID, pagination dto.CursorPagination) ([]*model.Post, error) {
	return r.page(ctx, "p.author_id = ANY($1) AND p.parent_id IS NULL", authorIDs, pagination)
}

func (r *postRepo) PageByAuthor(ctx context.Context, authorID uuid.UUID, pagination dto.CursorPagination) ([]*model.Post, error) {
	return r.page(ctx, "p.author_id = $1", authorID, pagination)
}

func (r *postRepo) PageComments(ctx context.Context, parentID uuid.UUID, pagination dto.CursorPagination) ([]*model.Post, error) {
	return r.page(ctx, "p.parent_id = $1", parentID, pagination)
}

const postSelect = "SELECT p.id, p.author_id, p.content, p.parent_id, p.created_at FROM posts p"

// pageAfterQuery continues down the page order past the cursor row.
func pageAfterQuery(filter string) string {
	return fmt.Sprintf(
		"%s WHERE %s AND (p.created_at < $2 OR (p.created_at = $2 AND p.id > $3)) ORDER BY p.created_at DESC, p.id ASC LIMIT $4",
		postSelect, filter,
	)
}

// pageBeforeQuery selects the window just above the cursor row. The order is
// reversed so LIMIT takes the rows adjacent to the cursor; the caller flips
// the result back into page order.
func pageBeforeQuery(filter string) string {
	return fmt.Sprintf(
		"%s WHERE %s AND (p.created_at > $2 OR (p.created_at = $2 AND p.id < $3)) ORDER BY p.created_at ASC, p.id DESC LIMIT $4",
		postSelect, filter,
	)
}

func pageFirstQuery(filter string) string {
	return fmt.Sprintf("%s WHERE %s ORDER BY p.created_at DESC, p.id ASC LIMIT $2", postSelect, filter)
}

func normalizePostLimit(limit int) int {
	if limit <= 0 {
		return GET_POSTS_DEFAULT_LIMIT
	}
	if limit > GET_POSTS_MAX_LIMIT {
		return GET_POSTS_MAX_LIMIT
	}
	return limit
}

// page runs cursor pagination over posts matching filter. The page order is
// created_at DESC, id ASC; "after" continues down that order, "before" returns
// the window just above the cursor, still in page order.
func (r *postRepo) page(ctx context.Context, filter string, filterArg interface{}, pagination dto.CursorPagination) ([]*model.Post, error) {
	limit := normalizePostLimit(pagination.Limit)

	switch {
	case pagination.After != nil:
		cursorAt, err := r.createdAt(ctx, *pagination.After)
		if err != nil {
			return nil, err
		}
		rows, err := r.db.Query(ctx, pageAfterQuery(filter), filterArg, cursorAt, *pagination.After, limit)
		if err != nil {
			return nil, err
		}
		return scanPosts(rows)

	case pagination.Before != nil:
		cursorAt, err := r.createdAt(ctx, *pagination.Before)
		if err != nil {
			return nil, err
		}
		rows, err := r.db.Query(ctx, pageBeforeQuery(filter), filterArg, cursorAt, *pagination.Before, limit)
		if err != nil {
			return nil, err
		}
		posts, err := scanPosts(rows)
		if err != nil {
			return nil, err
		}
		reversePosts(posts)
		return posts, nil

	default:
		rows, err := r.db.Query(ctx, pageFirstQuery(filter), filterArg, limit)
		if err != nil {
			return nil, err
		}
		return scanPosts(rows)
	}
}

// createdAt resolves a cursor post id to its timestamp.
// Returns pgx.ErrNoRows for an unknown cursor.
func (r *postRepo) createdAt(ctx context.Context, id uuid.UUID) (time.Time, error) {
	var createdAt time.Time
	err := r.db.QueryRow(ctx, "SELECT p.created_at FROM posts p WHERE p.id = $1", id).Scan(&createdAt)
	return createdAt, err
}

func scanPosts(rows pgx.Rows) ([]*model.Post, error) {
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Content, &p.ParentID, &p.CreatedAt); err != nil {
			return nil, err
		}
		posts = append(posts, &p)
	}

	return posts, rows.Err()
}

func reversePosts(posts []*model.Post) {
	for i, j := 0, len(posts)-1; i < j; i, j = i+1, j-1 {
		posts[i], posts[j] = posts[j], posts[i]
	}
}
