package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/morf1lo/social-network/internal/model"
)

const GET_REACTIONS_MAX_LIMIT = 50

type reactionRepo struct {
	db *pgxpool.Pool
}

func newReactionRepo(db *pgxpool.Pool) Reaction {
	return &reactionRepo{
		db: db,
	}
}

func (r *reactionRepo) Create(ctx context.Context, reaction *model.Reaction) error {
	return r.db.QueryRow(
		ctx,
		"INSERT INTO reactions(id, type, user_id, post_id) VALUES($1, $2, $3, $4) RETURNING created_at",
		reaction.ID, reaction.Type, reaction.UserID, reaction.PostID,
	).Scan(&reaction.CreatedAt)
}

func (r *reactionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Reaction, error) {
	var reaction model.Reaction
	if err := r.db.QueryRow(
		ctx,
		"SELECT r.id, r.type, r.user_id, r.post_id, r.created_at FROM reactions r WHERE r.id = $1",
		id,
	).Scan(
		&reaction.ID,
		&reaction.Type,
		&reaction.UserID,
		&reaction.PostID,
		&reaction.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &reaction, nil
}

func (r *reactionRepo) FindByUserAndPost(ctx context.Context, userID, postID uuid.UUID, reactionType string) (*model.Reaction, error) {
	var reaction model.Reaction
	if err := r.db.QueryRow(
		ctx,
		"SELECT r.id, r.type, r.user_id, r.post_id, r.created_at FROM reactions r WHERE r.user_id = $1 AND r.post_id = $2 AND r.type = $3",
		userID, postID, reactionType,
	).Scan(
		&reaction.ID,
		&reaction.Type,
		&reaction.UserID,
		&reaction.PostID,
		&reaction.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &reaction, nil
}

func (r *reactionRepo) FindByUserAndType(ctx context.Context, userID uuid.UUID, reactionType string, limit, offset int) ([]*model.Reaction, error) {
	if limit <= 0 || limit > GET_REACTIONS_MAX_LIMIT {
		limit = GET_REACTIONS_MAX_LIMIT
	}

	rows, err := r.db.Query(
		ctx,
		`
		SELECT r.id, r.type, r.user_id, r.post_id, r.created_at
		FROM reactions r
		WHERE r.user_id = $1 AND r.type = $2
		ORDER BY r.created_at DESC
		LIMIT $3
		OFFSET $4
		`,
		userID, reactionType, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reactions []*model.Reaction
	for rows.Next() {
		var reaction model.Reaction
		if err := rows.Scan(&reaction.ID, &reaction.Type, &reaction.UserID, &reaction.PostID, &reaction.CreatedAt); err != nil {
			return nil, err
		}
		reactions = append(reactions, &reaction)
	}

	return reactions, rows.Err()
}

func (r *reactionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM reactions WHERE id = $1", id)
	return err
}
