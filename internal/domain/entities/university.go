package entities

import (
	"strings"
	"time"
)

// UniversityType represents the ownership of a university
type UniversityType string

const (
	UniversityTypePublic  UniversityType = "public"
	UniversityTypePrivate UniversityType = "private"
)

// University represents a university entity
type University struct {
	ID                  string         `json:"id,omitempty"`
	Name                string         `json:"name" validate:"required"`
	Description         string         `json:"description,omitempty"`
	Type                UniversityType `json:"type" validate:"required,oneof=public private"`
	Ranking             *int           `json:"ranking,omitempty" validate:"omitempty,gte=1"`
	EstablishedYear     int            `json:"establishedYear,omitempty" validate:"omitempty,gte=1000,lte=3000"`
	Location            *Location      `json:"location" validate:"required"`
	Website             string         `json:"website,omitempty" validate:"omitempty,url"`
	URL                 string         `json:"url,omitempty" validate:"omitempty,url"`
	ApplyLink           string         `json:"applyLink,omitempty" validate:"omitempty,url"`
	ContactInfo         *ContactInfo   `json:"contactInfo,omitempty"`
	Facilities          []string       `json:"facilities,omitempty"`
	Accreditation       []string       `json:"accreditation,omitempty"`
	IsActive            bool           `json:"isActive"`
	AdmissionOpen       bool           `json:"admissionOpen"`
	ApplicationDeadline string         `json:"applicationDeadline,omitempty"`
	LastUpdated         *time.Time     `json:"lastUpdated,omitempty"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}

// UniversityLocations lists the distinct provinces and cities that
// universities are located in, each sorted.
type UniversityLocations struct {
	Provinces []string `json:"provinces"`
	Cities    []string `json:"cities"`
}

// Location of a campus
type Location struct {
	City        string       `json:"city,omitempty"`
	Province    string       `json:"province,omitempty"`
	Address     string       `json:"address,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// ContactInfo holds public contact channels
type ContactInfo struct {
	Email       string       `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string       `json:"phone,omitempty"`
	SocialMedia *SocialMedia `json:"socialMedia,omitempty"`
}

type SocialMedia struct {
	Facebook string `json:"facebook,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
}

// Province returns the nested location province, empty when unset.
func (u *University) Province() string {
	if u.Location == nil {
		return ""
	}
	return u.Location.Province
}

// Matches reports whether name or description contains term, ignoring case.
func (u *University) Matches(term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(u.Name), term) ||
		strings.Contains(strings.ToLower(u.Description), term)
}

// UniversityFilter holds the recognised list options. Zero values are ignored.
type UniversityFilter struct {
	Province string         `form:"province" json:"province,omitempty"`
	Type     UniversityType `form:"type" json:"type,omitempty"`
	// Ranking requests an ascending sort by ranking.
	Ranking bool `form:"ranking" json:"ranking,omitempty"`
	Limit   int  `form:"limit" json:"limit,omitempty"`
	Page    int  `form:"page" json:"page,omitempty"`
}

// Accepts applies the province and type predicates in memory.
func (f UniversityFilter) Accepts(u *University) bool {
	if f.Province != "" && u.Province() != f.Province {
		return false
	}
	if f.Type != "" && u.Type != f.Type {
		return false
	}
	return true
}

// AdmissionRefreshResult counts the outcome of an admission status pass
type AdmissionRefreshResult struct {
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Errors  int `json:"errors"`
}
