package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/explainmycode-backend/internal/platform/logger"
	"github.com/yungbote/explainmycode-backend/internal/types"
)

type ExplanationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Explanation) (*types.Explanation, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Explanation, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, explanation, complexity, language string) (*types.Explanation, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Explanation, error)
}

type explanationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewExplanationRepo(db *gorm.DB, baseLog *logger.Logger) ExplanationRepo {
	repoLog := baseLog.With("repo", "ExplanationRepo")
	return &explanationRepo{db: db, log: repoLog}
}

func (er *explanationRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Explanation) (*types.Explanation, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (er *explanationRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Explanation, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var result types.Explanation
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateFields is the only mutation a stored explanation supports: the
// user-edited explanation text, complexity note, and language tag.
// Everything else is immutable after creation.
func (er *explanationRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, explanation, complexity, language string) (*types.Explanation, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	res := transaction.WithContext(ctx).
		Model(&types.Explanation{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"explanation": explanation,
			"complexity":  complexity,
			"language":    language,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return er.GetByID(ctx, transaction, id)
}

func (er *explanationRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Explanation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (er *explanationRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Explanation, error) {
	transaction := tx
	if transaction == nil {
		transaction = er.db
	}

	var results []*types.Explanation
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
