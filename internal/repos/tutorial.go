package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/explainmycode-backend/internal/platform/logger"
	"github.com/yungbote/explainmycode-backend/internal/types"
)

type TutorialRepo interface {
	Create(ctx context.Context, tx *gorm.DB, row *types.Tutorial) (*types.Tutorial, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Tutorial, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Tutorial, error)
}

type tutorialRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTutorialRepo(db *gorm.DB, baseLog *logger.Logger) TutorialRepo {
	repoLog := baseLog.With("repo", "TutorialRepo")
	return &tutorialRepo{db: db, log: repoLog}
}

func (tr *tutorialRepo) Create(ctx context.Context, tx *gorm.DB, row *types.Tutorial) (*types.Tutorial, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

func (tr *tutorialRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Tutorial, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var result types.Tutorial
	if err := transaction.WithContext(ctx).
		Where("id = ?", id).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (tr *tutorialRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	res := transaction.WithContext(ctx).
		Where("id = ?", id).
		Delete(&types.Tutorial{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (tr *tutorialRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Tutorial, error) {
	transaction := tx
	if transaction == nil {
		transaction = tr.db
	}

	var results []*types.Tutorial
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
