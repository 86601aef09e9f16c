package chat

import (
	"context"

	"gorm.io/gorm"
)

// historyLimit caps the history listing at the 50 most recent exchanges.
const historyLimit = 50

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Insert(ctx context.Context, e *Exchange) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// ListByUser returns the user's exchanges, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Exchange, error) {
	var out []Exchange
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(historyLimit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ListRecentDesc returns up to limit exchanges, newest first, for building
// the provider context window.
func (r *Repo) ListRecentDesc(ctx context.Context, userID string, limit int) ([]Exchange, error) {
	if limit <= 0 {
		limit = 10
	}
	var out []Exchange
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
