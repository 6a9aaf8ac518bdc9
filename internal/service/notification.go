package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5"
	"github.com/morf1lo/social-network/internal/dto"
	"github.com/morf1lo/social-network/internal/model"
	"github.com/morf1lo/social-network/internal/rabbitmq"
	"github.com/morf1lo/social-network/internal/repository"
	"github.com/morf1lo/social-network/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type notificationService struct {
	logger *zap.Logger
	repo *repository.Repository
	rdb *redis.Client
	rabbitmq *rabbitmq.MQConn
	scheduler gocron.Scheduler
	conns *sync.Map
	deliveryChan chan model.NotificationDelivery
}

func newNotificationService(logger *zap.Logger, repo *repository.Repository, rdb *redis.Client, rabbitmq *rabbitmq.MQConn) Notification {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		panic(err)
	}

	s := &notificationService{
		logger: logger,
		repo: repo,
		rdb: rdb,
		rabbitmq: rabbitmq,
		scheduler: scheduler,
		conns: &sync.Map{},
		deliveryChan: make(chan model.NotificationDelivery, 1000),
	}

	for range 5 {
		go s.deliveryWorker()
	}

	return s
}

func (s *notificationService) deliveryWorker() {
	for msg := range s.deliveryChan {
		val, ok := s.conns.Load(msg.ReceiverID)
		if !ok {
			continue
		}

		conn, ok := val.(*WSConn)
		if !ok {
			continue
		}

		payload := map[string]string{
			"type": msg.Type,
			"content": msg.Content,
			"resource_id": msg.ResourceID,
		}
		if err := conn.WriteJSON(payload); err != nil {
			s.logger.Sugar().Errorf("failed to write json msg to receiver(%s)'s conn: %s", msg.ReceiverID.String(), err.Error())
		}
	}
}

func (s *notificationService) RegisterConnection(userID uuid.UUID, conn *websocket.Conn) {
	s.conns.Store(userID, newWSConn(conn))

	go func(userID uuid.UUID, c *websocket.Conn) {
		for {
			_, _, err := c.ReadMessage()
			if err != nil {
				s.UnregisterConnection(userID)
				break
			}
		}
	}(userID, conn)
}

func (s *notificationService) UnregisterConnection(userID uuid.UUID) {
	if val, ok := s.conns.Load(userID); ok {
		if conn, ok := val.(*WSConn); ok {
			conn.Close()
		}
		s.conns.Delete(userID)
	}
}

func (s *notificationService) StartProcessingNewPostNotifications(ctx context.Context) {
	msgs, err := s.rabbitmq.Consume(rabbitmq.NEW_POST_QUEUE)
	if err != nil {
		panic(err)
	}

	for msg := range msgs {
		var postCreatedDto dto.MQPostCreated
		if err := json.Unmarshal(msg.Body, &postCreatedDto); err != nil {
			msg.Ack(false)
			continue
		}

		receivers, err := s.repo.Postgres.Follow.FollowerIDs(ctx, postCreatedDto.AuthorID)
		if err != nil {
			s.logger.Sugar().Errorf("failed to get user(%s)'s followers: %s", postCreatedDto.AuthorID.String(), err.Error())
			msg.Ack(false)
			continue
		}
		if len(receivers) == 0 {
			msg.Ack(false)
			continue
		}

		author, err := s.repo.Postgres.User.FindByID(ctx, postCreatedDto.AuthorID)
		if err != nil {
			s.logger.Sugar().Errorf("failed to get post(%s) author(%s) from postgres: %s", postCreatedDto.PostID.String(), postCreatedDto.AuthorID.String(), err.Error())
			msg.Ack(false)
			continue
		}

		notificationType := "newpost"
		content := fmt.Sprintf("%s has published a new post", author.Username)
		resourceID := postCreatedDto.PostID.String()

		var notifications []model.Notification
		for _, receiver := range receivers {
			notifications = append(notifications, model.Notification{
				Type: notificationType,
				ReceiverID: receiver,
				Content: content,
				ResourceID: resourceID,
			})
		}

		if err := s.repo.Postgres.Notification.CreateBatched(ctx, notifications, 1000); err != nil {
			s.logger.Sugar().Errorf("failed to create batched notifications for post(%s): %s", postCreatedDto.PostID.String(), err.Error())
			msg.Ack(false)
			continue
		}

		msg.Ack(false)

		for _, receiver := range receivers {
			s.deliveryChan <- model.NotificationDelivery{
				ReceiverID: receiver,
				Type: notificationType,
				Content: content,
				ResourceID: resourceID,
			}
		}
	}
}

func (s *notificationService) StartProcessingFollowNotifications(ctx context.Context) {
	msgs, err := s.rabbitmq.Consume(rabbitmq.FOLLOWS_QUEUE)
	if err != nil {
		panic(err)
	}

	for msg := range msgs {
		var followDto dto.MQFollow
		if err := json.Unmarshal(msg.Body, &followDto); err != nil {
			msg.Ack(false)
			continue
		}

		follower, err := s.repo.Postgres.User.FindByID(ctx, followDto.FollowerID)
		if err != nil {
			s.logger.Sugar().Errorf("failed to get follower(%s) from postgres: %s", followDto.FollowerID.String(), err.Error())
			msg.Ack(false)
			continue
		}

		notification := model.Notification{
			Type: "follow",
			ReceiverID: followDto.UserID,
			Content: fmt.Sprintf("%s started following you", follower.Username),
			ResourceID: follower.ID.String(),
		}

		if err := s.repo.Postgres.Notification.CreateBatched(ctx, []model.Notification{notification}, 1); err != nil {
			s.logger.Sugar().Errorf("failed to create follow notification for user(%s): %s", followDto.UserID.String(), err.Error())
			msg.Ack(false)
			continue
		}

		msg.Ack(false)

		s.deliveryChan <- model.NotificationDelivery{
			ReceiverID: notification.ReceiverID,
			Type: notification.Type,
			Content: notification.Content,
			ResourceID: notification.ResourceID,
		}
	}
}

func (s *notificationService) GetUserNotifications(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.Notification, error) {
	notificationsCache, err := redisrepo.Get[[]*model.Notification](s.rdb, ctx, redisrepo.UserNotificationsKey(userID.String(), limit, offset))
	if err == nil {
		return *notificationsCache, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Errorf("failed to get user(%s)'s notifications from redis: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	notifications, err := s.repo.Postgres.Notification.GetUserNotifications(ctx, userID, limit, offset)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to get user(%s)'s notifications from postgres: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	if err := redisrepo.SetJSON(s.rdb, ctx, redisrepo.UserNotificationsKey(userID.String(), limit, offset), notifications, time.Minute * 2); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s)'s notification in redis cache: %s", userID.String(), err.Error())
	}

	return notifications, nil
}

func (s *notificationService) newDeleteOldNotificationsJob() {
	s.scheduler.NewJob(gocron.DurationJob(time.Hour * 12), gocron.NewTask(func(ctx context.Context) {
		if err := s.repo.Postgres.Notification.DeleteOldNotifications(ctx); err != nil {
			s.logger.Sugar().Errorf("failed to delete old notifications: %s", err.Error())
		}
	}))
}

func (s *notificationService) StartJobs() {
	s.newDeleteOldNotificationsJob()

	s.scheduler.Start()
}
