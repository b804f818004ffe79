package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User represents a student (or admin) account profile. Credentials live in
// the auth provider, never here.
type User struct {
	ID               string           `json:"id,omitempty"`
	Email            string           `json:"email" validate:"required,email"`
	Name             string           `json:"name" validate:"required"`
	Profile          *UserProfile     `json:"profile,omitempty"`
	Preferences      *UserPreferences `json:"preferences,omitempty"`
	Documents        []UserDocument   `json:"documents,omitempty" validate:"dive"`
	Role             UserRole         `json:"role" validate:"omitempty,oneof=user admin"`
	EmailVerified    bool             `json:"emailVerified"`
	EducationLevel   string           `json:"educationLevel,omitempty"`
	AcademicInterest string           `json:"academicInterest,omitempty"`
	Province         string           `json:"province,omitempty"`
	Grades           string           `json:"grades,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
	LastLogin        null.Time        `json:"lastLogin"`
}

type UserProfile struct {
	PhoneNumber      string            `json:"phoneNumber,omitempty"`
	DateOfBirth      null.Time         `json:"dateOfBirth"`
	Gender           string            `json:"gender,omitempty"`
	Nationality      string            `json:"nationality,omitempty"`
	CurrentEducation *CurrentEducation `json:"currentEducation,omitempty"`
}

type CurrentEducation struct {
	Level       string  `json:"level,omitempty"`
	Institution string  `json:"institution,omitempty"`
	Major       string  `json:"major,omitempty"`
	GPA         float64 `json:"gpa,omitempty"`
}

type UserPreferences struct {
	PreferredLocations []string `json:"preferredLocations,omitempty"`
	PreferredPrograms  []string `json:"preferredPrograms,omitempty"`
	MaxFee             float64  `json:"maxFee,omitempty"`
	StudyLevel         string   `json:"studyLevel,omitempty"`
}

type UserDocument struct {
	Type       string    `json:"type" validate:"required"`
	URL        string    `json:"url" validate:"required,url"`
	UploadedAt time.Time `json:"uploadedAt"`
}
