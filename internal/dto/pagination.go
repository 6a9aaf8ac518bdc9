package dto

import "github.com/google/uuid"

// CursorPagination positions a page relative to a post id.
// Before and After are mutually exclusive.
type CursorPagination struct {
	Limit  int
	Before *uuid.UUID
	After  *uuid.UUID
}

// OffsetPagination is used where the result set is small and
// already materialized (user recommendations).
type OffsetPagination struct {
	Limit int
	Skip  int
}
