package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/yungbote/explainmycode-backend/internal/platform/apierr"
	"github.com/yungbote/explainmycode-backend/internal/platform/logger"
	"github.com/yungbote/explainmycode-backend/internal/repos"
	"github.com/yungbote/explainmycode-backend/internal/types"
)

type UserService interface {
	SyncUser(ctx context.Context, externalUID string, email string) (*types.User, error)
	GetByExternalUID(ctx context.Context, externalUID string) (*types.User, error)
}

type userService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(log *logger.Logger, userRepo repos.UserRepo) UserService {
	return &userService{
		log:      log.With("service", "UserService"),
		userRepo: userRepo,
	}
}

// SyncUser upserts the row for an externally authenticated identity.
// Safe to call on every sign-in; concurrent first sign-ins converge on
// one row (see UserRepo.FindOrCreate).
func (us *userService) SyncUser(ctx context.Context, externalUID string, email string) (*types.User, error) {
	externalUID = strings.TrimSpace(externalUID)
	email = strings.TrimSpace(email)
	if externalUID == "" || email == "" {
		return nil, apierr.New(http.StatusBadRequest, "validation_error", errors.New("uid and email are required"))
	}
	u, err := us.userRepo.FindOrCreate(ctx, nil, externalUID, email)
	if err != nil {
		us.log.Error("User sync failed", "uid", externalUID, "error", err)
		return nil, err
	}
	return u, nil
}

func (us *userService) GetByExternalUID(ctx context.Context, externalUID string) (*types.User, error) {
	u, err := us.userRepo.GetByExternalUID(ctx, nil, externalUID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierr.New(http.StatusNotFound, "user_not_found", errors.New("User not found"))
		}
		return nil, err
	}
	return u, nil
}
