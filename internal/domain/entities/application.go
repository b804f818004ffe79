package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// ApplicationStatus represents the review state of an application
type ApplicationStatus string

const (
	ApplicationStatusPending     ApplicationStatus = "pending"
	ApplicationStatusSubmitted   ApplicationStatus = "submitted"
	ApplicationStatusUnderReview ApplicationStatus = "under-review"
	ApplicationStatusAccepted    ApplicationStatus = "accepted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
)

// Valid reports whether s is one of the closed set of statuses.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusSubmitted, ApplicationStatusUnderReview,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// DocumentStatus represents the review state of one uploaded document
type DocumentStatus string

const (
	DocumentStatusPending  DocumentStatus = "pending"
	DocumentStatusApproved DocumentStatus = "approved"
	DocumentStatusRejected DocumentStatus = "rejected"
)

// Application represents a student's application to a program
type Application struct {
	ID              string                `json:"id,omitempty"`
	UserID          string                `json:"userId" validate:"required"`
	ProgramID       string                `json:"programId" validate:"required"`
	UniversityID    string                `json:"universityId" validate:"required"`
	Status          ApplicationStatus     `json:"status" validate:"required,oneof=pending submitted under-review accepted rejected"`
	Documents       []ApplicationDocument `json:"documents,omitempty" validate:"dive"`
	ApplicationData *ApplicationData      `json:"applicationData,omitempty"`
	Timeline        []TimelineEvent       `json:"timeline"`
	Notes           string                `json:"notes,omitempty"`
	SubmittedAt     null.Time             `json:"submittedAt"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

type ApplicationDocument struct {
	Type       string         `json:"type" validate:"required"`
	Name       string         `json:"name,omitempty"`
	URL        string         `json:"url" validate:"required,url"`
	UploadedAt time.Time      `json:"uploadedAt"`
	Status     DocumentStatus `json:"status" validate:"omitempty,oneof=pending approved rejected"`
}

type ApplicationData struct {
	PersonalInfo *PersonalInfo `json:"personalInfo,omitempty"`
	AcademicInfo *AcademicInfo `json:"academicInfo,omitempty"`
	TestScores   []TestScore   `json:"testScores,omitempty"`
}

type PersonalInfo struct {
	FullName       string    `json:"fullName,omitempty"`
	DateOfBirth    null.Time `json:"dateOfBirth"`
	Nationality    string    `json:"nationality,omitempty"`
	PassportNumber string    `json:"passportNumber,omitempty"`
}

type AcademicInfo struct {
	PreviousDegree string  `json:"previousDegree,omitempty"`
	Institution    string  `json:"institution,omitempty"`
	GPA            float64 `json:"gpa,omitempty"`
	GraduationYear int     `json:"graduationYear,omitempty"`
}

type TestScore struct {
	TestName     string    `json:"testName"`
	Score        float64   `json:"score"`
	DateObtained null.Time `json:"dateObtained"`
}

// TimelineEvent records one status transition. The timeline is append-only.
type TimelineEvent struct {
	Status ApplicationStatus `json:"status"`
	Date   time.Time         `json:"date"`
	Notes  string            `json:"notes,omitempty"`
}

// ApplicationCreateInput is the payload accepted by POST /applications.
// Identity comes from the caller, status always starts as pending.
type ApplicationCreateInput struct {
	ProgramID       string                `json:"programId" validate:"required"`
	UniversityID    string                `json:"universityId" validate:"required"`
	Documents       []ApplicationDocument `json:"documents,omitempty" validate:"dive"`
	ApplicationData *ApplicationData      `json:"applicationData,omitempty"`
	Notes           string                `json:"notes,omitempty"`
}

// ApplicationStatusInput moves an application to a new status
type ApplicationStatusInput struct {
	Status ApplicationStatus `json:"status" validate:"required,oneof=pending submitted under-review accepted rejected"`
	Notes  string            `json:"notes,omitempty"`
}
