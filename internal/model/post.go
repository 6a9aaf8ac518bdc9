package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID        uuid.UUID  `json:"id"`
	AuthorID  uuid.UUID  `json:"author_id"`
	Content   string     `json:"content"`
	ParentID  *uuid.UUID `json:"parent_id"` // nil for top-level posts, set for comments
	CreatedAt time.Time  `json:"created_at"`
}

// IsComment reports whether the post replies to another post.
func (p *Post) IsComment() bool {
	return p.ParentID != nil
}
