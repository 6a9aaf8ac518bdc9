package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/morf1lo/social-network/internal/model"
)

type messageRepo struct {
	db *pgxpool.Pool
}

func newMessageRepo(db *pgxpool.Pool) Message {
	return &messageRepo{
		db: db,
	}
}

func (r *messageRepo) Create(ctx context.Context, message *model.Message) error {
	return r.db.QueryRow(
		ctx,
		"INSERT INTO messages(id, sender_id, recipient_id, content) VALUES($1, $2, $3, $4) RETURNING created_at",
		message.ID, message.SenderID, message.RecipientID, message.Content,
	).Scan(&message.CreatedAt)
}

func (r *messageRepo) FindByUser(ctx context.Context, userID uuid.UUID) ([]*model.Message, error) {
	rows, err := r.db.Query(
		ctx,
		`
		SELECT m.id, m.sender_id, m.recipient_id, m.content, m.created_at
		FROM messages m
		WHERE m.sender_id = $1 OR m.recipient_id = $1
		ORDER BY m.created_at ASC
		`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.RecipientID, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		messages = append(messages, &m)
	}

	return messages, rows.Err()
}
