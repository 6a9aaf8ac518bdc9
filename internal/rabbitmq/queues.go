package rabbitmq

const (
	NEW_POST_QUEUE = "posts.created"
	FOLLOWS_QUEUE  = "follows"
)
