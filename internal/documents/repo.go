package documents

import (
	"context"

	"gorm.io/gorm"
)

// listLimit caps a listing at the 100 most recent clinical dates.
const listLimit = 100

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

// ListByUser returns the user's documents, newest clinical date first.
func (r *Repo) ListByUser(ctx context.Context, userID string) ([]Document, error) {
	var docs []Document
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Limit(listLimit).
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Get scopes the lookup to the owner. A document owned by someone else
// surfaces as gorm.ErrRecordNotFound, hiding its existence.
func (r *Repo) Get(ctx context.Context, userID, docID string) (*Document, error) {
	var d Document
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", docID, userID).
		First(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// Delete removes the document under the same ownership scoping as Get.
func (r *Repo) Delete(ctx context.Context, userID, docID string) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", docID, userID).
		Delete(&Document{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
