package repos

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/explainmycode-backend/internal/platform/logger"
	"github.com/yungbote/explainmycode-backend/internal/types"
)

type UserRepo interface {
	FindOrCreate(ctx context.Context, tx *gorm.DB, externalUID string, email string) (*types.User, error)
	GetByExternalUID(ctx context.Context, tx *gorm.DB, externalUID string) (*types.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

// FindOrCreate is the idempotent sync point for externally
// authenticated identities. Two first-sign-in requests can race past
// the initial lookup; the unique index on external_uid makes one of the
// inserts fail, and that loser re-fetches the row the winner created.
func (ur *userRepo) FindOrCreate(ctx context.Context, tx *gorm.DB, externalUID string, email string) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	existing, err := ur.GetByExternalUID(ctx, transaction, externalUID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row := &types.User{ExternalUID: externalUID, Email: email}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if err := transaction.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return ur.GetByExternalUID(ctx, transaction, externalUID)
		}
		return nil, err
	}
	return row, nil
}

func (ur *userRepo) GetByExternalUID(ctx context.Context, tx *gorm.DB, externalUID string) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var result types.User
	if err := transaction.WithContext(ctx).
		Where("external_uid = ?", externalUID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
	transaction := tx
	if transaction == nil {
		transaction = ur.db
	}

	var result types.User
	if err := transaction.WithContext(ctx).
		Where("id = ?", userID).
		First(&result).Error; err != nil {
		return nil, err
	}
	return &result, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "sqlstate 23505")
}
