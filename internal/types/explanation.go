package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Explanation is the persisted form of a generated code explanation.
// The list-valued fields come straight out of the model's JSON and are
// stored as JSON columns rather than join tables.
type Explanation struct {
	ID     uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null;column:user_id" json:"user_id"`

	Code        string `gorm:"column:code" json:"code"`
	Explanation string `gorm:"column:explanation" json:"explanation"`
	Language    string `gorm:"column:language" json:"language"`
	Complexity  string `gorm:"column:complexity" json:"complexity"`

	Summary             string         `gorm:"column:summary" json:"summary"`
	TimeComplexity      string         `gorm:"column:time_complexity" json:"timeComplexity"`
	SpaceComplexity     string         `gorm:"column:space_complexity" json:"spaceComplexity"`
	LogicBreakdown      datatypes.JSON `gorm:"column:logic_breakdown" json:"logicBreakdown"`
	EdgeCases           datatypes.JSON `gorm:"column:edge_cases" json:"edgeCases"`
	Bugs                datatypes.JSON `gorm:"column:bugs" json:"bugs"`
	BeginnerExplanation string         `gorm:"column:beginner_explanation" json:"beginnerExplanation"`
	Recommendation      string         `gorm:"column:recommendation" json:"recommendation"`
	OptimizedVersion    string         `gorm:"column:optimized_version" json:"optimizedVersion"`
	KeyConcepts         datatypes.JSON `gorm:"column:key_concepts" json:"keyConcepts"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Explanation) TableName() string { return "explanation" }
