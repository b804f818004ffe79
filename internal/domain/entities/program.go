package entities

import "time"

// DegreeLevel represents the level of a program
type DegreeLevel string

const (
	DegreeLevelBachelors DegreeLevel = "Bachelors"
	DegreeLevelMasters   DegreeLevel = "Masters"
	DegreeLevelPhD       DegreeLevel = "PhD"
)

// Program represents a degree program offered by a university
type Program struct {
	ID                    string                 `json:"id,omitempty"`
	Name                  string                 `json:"name" validate:"required"`
	UniversityID          string                 `json:"universityId" validate:"required"`
	DegreeLevel           DegreeLevel            `json:"degreeLevel" validate:"required,oneof=Bachelors Masters PhD"`
	FieldOfStudy          string                 `json:"fieldOfStudy,omitempty"`
	Description           string                 `json:"description,omitempty"`
	Duration              *ProgramDuration       `json:"duration" validate:"required"`
	AdmissionRequirements *AdmissionRequirements `json:"admissionRequirements,omitempty"`
	Fees                  *ProgramFees           `json:"fees,omitempty"`
	Deadlines             *ProgramDeadlines      `json:"deadlines,omitempty"`
	Quota                 int                    `json:"quota,omitempty" validate:"gte=0"`
	IsActive              bool                   `json:"isActive"`
	LastUpdated           *time.Time             `json:"lastUpdated,omitempty"`
	CreatedAt             time.Time              `json:"createdAt"`
	UpdatedAt             time.Time              `json:"updatedAt"`
}

type ProgramDuration struct {
	Years     float64 `json:"years" validate:"gte=0"`
	Semesters int     `json:"semesters" validate:"gte=0"`
}

type AdmissionRequirements struct {
	MinimumGPA             float64  `json:"minimumGPA,omitempty" validate:"gte=0"`
	RequiredTests          []string `json:"requiredTests,omitempty"`
	Documents              []string `json:"documents,omitempty"`
	AdditionalRequirements string   `json:"additionalRequirements,omitempty"`
}

type ProgramFees struct {
	TuitionFee     float64    `json:"tuitionFee" validate:"gte=0"`
	ApplicationFee float64    `json:"applicationFee" validate:"gte=0"`
	OtherFees      []OtherFee `json:"otherFees,omitempty" validate:"dive"`
	Currency       string     `json:"currency,omitempty"`
	PerSemester    bool       `json:"perSemester"`
}

type OtherFee struct {
	Name   string  `json:"name" validate:"required"`
	Amount float64 `json:"amount" validate:"gte=0"`
}

type ProgramDeadlines struct {
	ApplicationStart *time.Time `json:"applicationStart,omitempty"`
	ApplicationEnd   *time.Time `json:"applicationEnd,omitempty"`
	ProgramStart     *time.Time `json:"programStart,omitempty"`
}
