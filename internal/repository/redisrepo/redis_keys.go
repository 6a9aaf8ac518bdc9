package redisrepo

import "fmt"

const (
	USER = "user:%s" // <userID>
	USER_NOTIFICATIONS = "user:%s-notifications:%d:%d" // <userID>:<limit>:<offset>
)

func UserKey(userID string) string {
	return fmt.Sprintf(USER, userID)
}

func UserNotificationsKey(userID string, limit int, offset int) string {
	return fmt.Sprintf(USER_NOTIFICATIONS, userID, limit, offset)
}
