package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/morf1lo/social-network/internal/repository"
)

// AccessPolicy decides whether a viewer may read content authored by another
// user. Every single-item read path (post, profile, comment thread, reactions)
// must consult it; bulk feed assembly relies on the visible-author set instead.
type AccessPolicy interface {
	CanAccess(ctx context.Context, viewerID, authorID uuid.UUID) (bool, error)
}

type accessPolicy struct {
	repo *repository.Repository
}

func newAccessPolicy(repo *repository.Repository) AccessPolicy {
	return &accessPolicy{
		repo: repo,
	}
}

// CanAccess evaluates cheapest rule first: self-access, then the author's
// privacy flag, then the follow edge. An unknown author surfaces ErrNotFound
// so callers can keep hiding existence of private content upstream.
func (p *accessPolicy) CanAccess(ctx context.Context, viewerID, authorID uuid.UUID) (bool, error) {
	if viewerID == authorID {
		return true, nil
	}

	private, err := p.repo.Postgres.User.IsPrivate(ctx, authorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, ErrNotFound
		}
		return false, err
	}
	if !private {
		return true, nil
	}

	return p.repo.Postgres.Follow.Exists(ctx, viewerID, authorID)
}
