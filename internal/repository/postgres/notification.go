package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/morf1lo/social-network/internal/model"
)

const (
	GET_NOTIFICATIONS_MAX_LIMIT = 10
	OLD_NOTIFICATIONS_DAYS = 14
)

type notificationRepo struct {
	db *pgxpool.Pool
}

func newNotificationRepo(db *pgxpool.Pool) Notification {
	return &notificationRepo{
		db: db,
	}
}

func (r *notificationRepo) createBatch(ctx context.Context, notifications []model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	query := "INSERT INTO notifications(type, receiver_id, content, resource_id) VALUES "
	values := []interface{}{}
	counter := 1

	for _, n := range notifications {
		query += fmt.Sprintf("($%d, $%d, $%d, $%d),", counter, counter+1, counter+2, counter+3)
		values = append(values, n.Type, n.ReceiverID, n.Content, n.ResourceID)
		counter += 4
	}

	query = query[:len(query)-1]
	_, err := r.db.Exec(ctx, query, values...)
	return err
}

func (r *notificationRepo) CreateBatched(ctx context.Context, notifications []model.Notification, batchSize int) error {
	for i := 0; i < len(notifications); i += batchSize {
		end := i + batchSize
		if end > len(notifications) {
			end = len(notifications)
		}

		if err := r.createBatch(ctx, notifications[i:end]); err != nil {
			return err
		}
	}

	return nil
}

func (r *notificationRepo) GetUserNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Notification, error) {
	if limit <= 0 || limit > GET_NOTIFICATIONS_MAX_LIMIT {
		limit = GET_NOTIFICATIONS_MAX_LIMIT
	}

	rows, err := r.db.Query(
		ctx,
		`
		SELECT n.id, n.type, n.content, n.resource_id, n.created_at
		FROM notifications n
		WHERE n.receiver_id = $1
		ORDER BY n.created_at DESC
		LIMIT $2
		OFFSET $3
		`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.Type, &n.Content, &n.ResourceID, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.ReceiverID = userID

		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *notificationRepo) DeleteOldNotifications(ctx context.Context) error {
	_, err := r.db.Exec(ctx, "DELETE FROM notifications WHERE created_at < NOW() - MAKE_INTERVAL(days => $1)", OLD_NOTIFICATIONS_DAYS)
	return err
}
