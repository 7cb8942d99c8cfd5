package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/explainmycode-backend/internal/extract"
	"github.com/yungbote/explainmycode-backend/internal/platform/apierr"
	"github.com/yungbote/explainmycode-backend/internal/platform/logger"
	"github.com/yungbote/explainmycode-backend/internal/repos"
	"github.com/yungbote/explainmycode-backend/internal/types"
)

type TutorialSaveInput struct {
	Topic    string         `json:"topic"`
	Level    string         `json:"level"`
	Category string         `json:"category"`
	Language string         `json:"language"`
	Tutorial map[string]any `json:"tutorial"`
}

type TutorialService interface {
	Generate(ctx context.Context, topic, level, category, language string) (map[string]any, error)
	Save(ctx context.Context, externalUID string, input TutorialSaveInput) (*types.Tutorial, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Tutorial, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, externalUID string) ([]*types.Tutorial, error)
}

type tutorialService struct {
	log          *logger.Logger
	groq         GroqClient
	userRepo     repos.UserRepo
	tutorialRepo repos.TutorialRepo
}

func NewTutorialService(log *logger.Logger, groq GroqClient, userRepo repos.UserRepo, tutorialRepo repos.TutorialRepo) TutorialService {
	return &tutorialService{
		log:          log.With("service", "TutorialService"),
		groq:         groq,
		userRepo:     userRepo,
		tutorialRepo: tutorialRepo,
	}
}

// Generate produces a study card for a topic. Unset knobs fall back to
// the same defaults the web client uses.
func (ts *tutorialService) Generate(ctx context.Context, topic, level, category, language string) (map[string]any, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, apierr.New(http.StatusBadRequest, "validation_error", errors.New("topic is required"))
	}
	if level == "" {
		level = "beginner"
	}
	if category == "" {
		category = "algorithm"
	}
	if language == "" {
		language = "javascript"
	}

	content, err := ts.groq.Complete(ctx, TutorialPrompt(topic, level, category, language))
	if err != nil {
		return nil, classifyUpstream(err)
	}

	obj, err := extract.Tutorial(content)
	if err != nil {
		return nil, classifyExtraction(err)
	}
	return obj, nil
}

func (ts *tutorialService) Save(ctx context.Context, externalUID string, input TutorialSaveInput) (*types.Tutorial, error) {
	if strings.TrimSpace(externalUID) == "" {
		return nil, apierr.New(http.StatusBadRequest, "validation_error", errors.New("uid is required"))
	}
	if len(input.Tutorial) == 0 {
		return nil, apierr.New(http.StatusBadRequest, "validation_error", errors.New("tutorial payload is required"))
	}
	user, err := ts.userRepo.GetByExternalUID(ctx, nil, externalUID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierr.New(http.StatusNotFound, "user_not_found", errors.New("User not found"))
		}
		return nil, err
	}

	payload, err := json.Marshal(input.Tutorial)
	if err != nil {
		return nil, apierr.New(http.StatusBadRequest, "validation_error", err)
	}

	row := &types.Tutorial{
		UserID:   user.ID,
		Topic:    input.Topic,
		Level:    input.Level,
		Category: input.Category,
		Language: input.Language,
		Tutorial: datatypes.JSON(payload),
	}
	saved, err := ts.tutorialRepo.Create(ctx, nil, row)
	if err != nil {
		ts.log.Error("Tutorial save failed", "user_id", user.ID.String(), "error", err)
		return nil, err
	}
	return saved, nil
}

func (ts *tutorialService) Get(ctx context.Context, id uuid.UUID) (*types.Tutorial, error) {
	row, err := ts.tutorialRepo.GetByID(ctx, nil, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apierr.New(http.StatusNotFound, "tutorial_not_found", errors.New("Tutorial not found"))
		}
		return nil, err
	}
	return row, nil
}

func (ts *tutorialService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ts.tutorialRepo.Delete(ctx, nil, id); err != nil {
		if isNotFound(err) {
			return apierr.New(http.StatusNotFound, "tutorial_not_found", errors.New("Tutorial not found"))
		}
		return err
	}
	return nil
}

func (ts *tutorialService) ListByUser(ctx context.Context, externalUID string) ([]*types.Tutorial, error) {
	if strings.TrimSpace(externalUID) == "" {
		return nil, apierr.New(http.StatusBadRequest, "validation_error", errors.New("uid is required"))
	}
	user, err := ts.userRepo.GetByExternalUID(ctx, nil, externalUID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierr.New(http.StatusNotFound, "user_not_found", errors.New("User not found"))
		}
		return nil, err
	}
	return ts.tutorialRepo.ListByUser(ctx, nil, user.ID)
}
