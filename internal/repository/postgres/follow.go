package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type followRepo struct {
	db *pgxpool.Pool
}

func newFollowRepo(db *pgxpool.Pool) Follow {
	return &followRepo{
		db: db,
	}
}

// Create inserts the edge and reports whether a new row was actually
// written, so the service can distinguish a duplicate follow.
func (r *followRepo) Create(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		"INSERT INTO follows(follower_id, followed_id) VALUES($1, $2) ON CONFLICT DO NOTHING",
		followerID, followedID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *followRepo) Delete(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(
		ctx,
		"DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2",
		followerID, followedID,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *followRepo) Exists(ctx context.Context, followerID, followedID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		"SELECT EXISTS(SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2)",
		followerID, followedID,
	).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *followRepo) FollowedIDs(ctx context.Context, followerID uuid.UUID) ([]uuid.UUID, error) {
	return r.queryIDs(ctx, "SELECT f.followed_id FROM follows f WHERE f.follower_id = $1", followerID)
}

func (r *followRepo) FollowerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return r.queryIDs(ctx, "SELECT f.follower_id FROM follows f WHERE f.followed_id = $1", userID)
}

func (r *followRepo) MutualIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return r.queryIDs(
		ctx,
		`
		SELECT f.followed_id FROM follows f
		WHERE f.follower_id = $1
			AND EXISTS(SELECT 1 FROM follows b WHERE b.follower_id = f.followed_id AND b.followed_id = $1)
		`,
		userID,
	)
}

func (r *followRepo) queryIDs(ctx context.Context, query string, userID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}
