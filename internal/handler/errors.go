package handler

import "errors"

var (
	errNoToken = errors.New("there is no token")
	errInvalidJWT = errors.New("invalid jwt")
	errInvalidUserID = errors.New("invalid user ID")
	errInvalidPostID = errors.New("invalid post ID")
	errInvalidReactionID = errors.New("invalid reaction ID")
	errInvalidLimitOffset = errors.New("limit and offset must be integer")
	errInvalidCursor = errors.New("cursor must be a valid post ID")
)
