package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/explainmycode-backend/internal/extract"
	"github.com/yungbote/explainmycode-backend/internal/platform/apierr"
	"github.com/yungbote/explainmycode-backend/internal/platform/logger"
	"github.com/yungbote/explainmycode-backend/internal/repos"
	"github.com/yungbote/explainmycode-backend/internal/types"
)

type ExplanationSaveInput struct {
	Code                string   `json:"code"`
	Explanation         string   `json:"explanation"`
	Language            string   `json:"language"`
	Complexity          string   `json:"complexity"`
	Summary             string   `json:"summary"`
	TimeComplexity      string   `json:"timeComplexity"`
	SpaceComplexity     string   `json:"spaceComplexity"`
	LogicBreakdown      []string `json:"logicBreakdown"`
	EdgeCases           []string `json:"edgeCases"`
	Bugs                []string `json:"bugs"`
	BeginnerExplanation string   `json:"beginnerExplanation"`
	Recommendation      string   `json:"recommendation"`
	OptimizedVersion    string   `json:"optimizedVersion"`
	KeyConcepts         []string `json:"keyConcepts"`
}

type ExplanationService interface {
	Generate(ctx context.Context, code, language string) (map[string]any, error)
	Save(ctx context.Context, externalUID string, input ExplanationSaveInput) (*types.Explanation, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Explanation, error)
	Update(ctx context.Context, id uuid.UUID, explanation, complexity, language string) (*types.Explanation, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, externalUID string) ([]*types.Explanation, error)
}

type explanationService struct {
	log             *logger.Logger
	groq            GroqClient
	userRepo        repos.UserRepo
	explanationRepo repos.ExplanationRepo
}

func NewExplanationService(log *logger.Logger, groq GroqClient, userRepo repos.UserRepo, explanationRepo repos.ExplanationRepo) ExplanationService {
	return &explanationService{
		log:             log.With("service", "ExplanationService"),
		groq:            groq,
		userRepo:        userRepo,
		explanationRepo: explanationRepo,
	}
}

// Generate runs the full prompt → completion → extraction path. Nothing
// is persisted here; the caller decides whether the result is worth
// saving. Extraction failures are not retried, the user re-submits.
func (es *explanationService) Generate(ctx context.Context, code, language string) (map[string]any, error) {
	if strings.TrimSpace(code) == "" {
		return nil, apierr.New(http.StatusBadRequest, "validation_error", errors.New("code is required"))
	}

	content, err := es.groq.Complete(ctx, ExplanationPrompt(code, language))
	if err != nil {
		return nil, classifyUpstream(err)
	}

	obj, err := extract.Explanation(content)
	if err != nil {
		return nil, classifyExtraction(err)
	}
	return obj, nil
}

func (es *explanationService) Save(ctx context.Context, externalUID string, input ExplanationSaveInput) (*types.Explanation, error) {
	if strings.TrimSpace(externalUID) == "" {
		return nil, apierr.New(http.StatusBadRequest, "validation_error", errors.New("uid is required"))
	}
	user, err := es.userRepo.GetByExternalUID(ctx, nil, externalUID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierr.New(http.StatusNotFound, "user_not_found", errors.New("User not found"))
		}
		return nil, err
	}

	row := &types.Explanation{
		UserID:              user.ID,
		Code:                input.Code,
		Explanation:         input.Explanation,
		Language:            input.Language,
		Complexity:          input.Complexity,
		Summary:             input.Summary,
		TimeComplexity:      input.TimeComplexity,
		SpaceComplexity:     input.SpaceComplexity,
		LogicBreakdown:      toJSON(input.LogicBreakdown),
		EdgeCases:           toJSON(input.EdgeCases),
		Bugs:                toJSON(input.Bugs),
		BeginnerExplanation: input.BeginnerExplanation,
		Recommendation:      input.Recommendation,
		OptimizedVersion:    input.OptimizedVersion,
		KeyConcepts:         toJSON(input.KeyConcepts),
	}
	saved, err := es.explanationRepo.Create(ctx, nil, row)
	if err != nil {
		es.log.Error("Explanation save failed", "user_id", user.ID.String(), "error", err)
		return nil, err
	}
	return saved, nil
}

func (es *explanationService) Get(ctx context.Context, id uuid.UUID) (*types.Explanation, error) {
	row, err := es.explanationRepo.GetByID(ctx, nil, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apierr.New(http.StatusNotFound, "explanation_not_found", errors.New("Explanation not found"))
		}
		return nil, err
	}
	return row, nil
}

func (es *explanationService) Update(ctx context.Context, id uuid.UUID, explanation, complexity, language string) (*types.Explanation, error) {
	row, err := es.explanationRepo.UpdateFields(ctx, nil, id, explanation, complexity, language)
	if err != nil {
		if isNotFound(err) {
			return nil, apierr.New(http.StatusNotFound, "explanation_not_found", errors.New("Explanation not found"))
		}
		return nil, err
	}
	return row, nil
}

func (es *explanationService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := es.explanationRepo.Delete(ctx, nil, id); err != nil {
		if isNotFound(err) {
			return apierr.New(http.StatusNotFound, "explanation_not_found", errors.New("Explanation not found"))
		}
		return err
	}
	return nil
}

func (es *explanationService) ListByUser(ctx context.Context, externalUID string) ([]*types.Explanation, error) {
	if strings.TrimSpace(externalUID) == "" {
		return nil, apierr.New(http.StatusBadRequest, "validation_error", errors.New("uid is required"))
	}
	user, err := es.userRepo.GetByExternalUID(ctx, nil, externalUID)
	if err != nil {
		if isNotFound(err) {
			return nil, apierr.New(http.StatusNotFound, "user_not_found", errors.New("User not found"))
		}
		return nil, err
	}
	return es.explanationRepo.ListByUser(ctx, nil, user.ID)
}

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func toJSON(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(raw)
}

// classifyUpstream maps a failed completion call onto the gateway-type
// statuses the API exposes. The provider's own detail rides along.
func classifyUpstream(err error) error {
	var upErr *UpstreamError
	if errors.As(err, &upErr) {
		return apierr.New(http.StatusBadGateway, "groq_request_failed", err)
	}
	return apierr.New(http.StatusBadGateway, "groq_unreachable", err)
}

// classifyExtraction keeps the original asymmetry: an unusable
// completion with no JSON at all is a gateway failure (502), a span
// that was found but failed to parse is a server failure (500). Both
// carry the raw completion for diagnosis.
func classifyExtraction(err error) error {
	switch {
	case errors.Is(err, extract.ErrNoJSONObject):
		return apierr.New(http.StatusBadGateway, "ai_no_json_object", err)
	case errors.Is(err, extract.ErrMalformedJSON):
		return apierr.New(http.StatusInternalServerError, "ai_invalid_json", err)
	default:
		return apierr.New(http.StatusInternalServerError, "ai_extraction_failed", err)
	}
}
