package service

import "errors"

var (
	ErrInternal = errors.New("internal server error")
	ErrNotFound = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserAlreadyExists = errors.New("user with this username or email already exists")
	ErrInvalidSignUpInput = errors.New("username, email and a password of at least 8 characters are required")

	ErrSelfFollow = errors.New("cannot follow yourself")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrNotFollowing = errors.New("not following this user")

	ErrInvalidPostContent = errors.New("post content must be between 1 and 240 characters")
	ErrAmbiguousCursor = errors.New("'before' and 'after' cannot be combined")

	ErrInvalidReactionType = errors.New("reaction type must be 'like' or 'retweet'")
	ErrAlreadyReacted = errors.New("you have already reacted to this post")

	ErrNotMutuals = errors.New("messages can only be sent between mutual followers")
	ErrEmptyMessage = errors.New("message content must not be empty")
)
