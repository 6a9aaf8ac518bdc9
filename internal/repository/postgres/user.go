package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/morf1lo/social-network/internal/dto"
	"github.com/morf1lo/social-network/internal/model"
)

const (
	GET_USERS_DEFAULT_LIMIT = 10
	GET_USERS_MAX_LIMIT     = 50
)

type userRepo struct {
	db *pgxpool.Pool
}

func newUserRepo(db *pgxpool.Pool) User {
	return &userRepo{
		db: db,
	}
}

func (r *userRepo) Create(ctx context.Context, user model.User) error {
	_, err := r.db.Exec(
		ctx,
		"INSERT INTO users(id, username, email, display_name, private, password_hash) VALUES($1, $2, $3, $4, $5, $6)",
		user.ID, user.Username, user.Email, user.DisplayName, user.Private, user.PasswordHash,
	)
	return err
}

func (r *userRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	if err := r.db.QueryRow(
		ctx,
		"SELECT u.id, u.username, u.email, u.display_name, u.avatar_url, u.private, u.password_hash, u.created_at FROM users u WHERE u.id = $1",
		id,
	).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.DisplayName,
		&user.AvatarURL,
		&user.Private,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) FindByUsernameOrEmail(ctx context.Context, username string, email string) (*model.User, error) {
	var user model.User
	if err := r.db.QueryRow(
		ctx,
		"SELECT u.id, u.username, u.email, u.display_name, u.avatar_url, u.private, u.password_hash, u.created_at FROM users u WHERE u.username = $1 OR u.email = $2",
		username, email,
	).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.DisplayName,
		&user.AvatarURL,
		&user.Private,
		&user.PasswordHash,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userRepo) SetPrivacy(ctx context.Context, id uuid.UUID, private bool) error {
	var returnedID uuid.UUID
	return r.db.QueryRow(ctx, "UPDATE users SET private = $1 WHERE id = $2 RETURNING id", private, id).Scan(&returnedID)
}

func (r *userRepo) IsPrivate(ctx context.Context, id uuid.UUID) (bool, error) {
	var private bool
	if err := r.db.QueryRow(ctx, "SELECT u.private FROM users u WHERE u.id = $1", id).Scan(&private); err != nil {
		return false, err
	}
	return private, nil
}

func (r *userRepo) PublicUserIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, "SELECT u.id FROM users u WHERE u.private = false")
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

func (r *userRepo) FindViewsByIDs(ctx context.Context, ids []uuid.UUID, pagination dto.OffsetPagination) ([]*model.UserView, error) {
	limit := pagination.Limit
	if limit <= 0 {
		limit = GET_USERS_DEFAULT_LIMIT
	}
	if limit > GET_USERS_MAX_LIMIT {
		limit = GET_USERS_MAX_LIMIT
	}

	rows, err := r.db.Query(
		ctx,
		`
		SELECT u.id, u.username, u.display_name, u.avatar_url
		FROM users u
		WHERE u.id = ANY($1)
		ORDER BY u.id ASC
		LIMIT $2
		OFFSET $3
		`,
		ids, limit, pagination.Skip,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var views []*model.UserView
	for rows.Next() {
		var v model.UserView
		if err := rows.Scan(&v.ID, &v.Username, &v.DisplayName, &v.AvatarURL); err != nil {
			return nil, err
		}
		views = append(views, &v)
	}

	return views, rows.Err()
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	return err
}
