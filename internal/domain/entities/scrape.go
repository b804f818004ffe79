package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// ScrapeStatus is shared by scrape requests and scrape jobs
type ScrapeStatus string

const (
	ScrapeStatusPending    ScrapeStatus = "pending"
	ScrapeStatusProcessing ScrapeStatus = "processing"
	ScrapeStatusCompleted  ScrapeStatus = "completed"
	ScrapeStatusFailed     ScrapeStatus = "failed"
)

// CanTransitionTo allows pending -> processing -> completed|failed, and
// pending -> failed for requests rejected before pickup.
func (s ScrapeStatus) CanTransitionTo(next ScrapeStatus) bool {
	switch s {
	case ScrapeStatusPending:
		return next == ScrapeStatusProcessing || next == ScrapeStatusFailed
	case ScrapeStatusProcessing:
		return next == ScrapeStatusCompleted || next == ScrapeStatusFailed
	}
	return false
}

// ScrapeRequest is a user's request to have a university page scraped.
// Only the record is kept here; the scraping pipeline is elsewhere.
type ScrapeRequest struct {
	ID            string       `json:"id,omitempty"`
	UserID        string       `json:"userId" validate:"required"`
	UniversityURL string       `json:"universityUrl" validate:"required,url"`
	Status        ScrapeStatus `json:"status" validate:"required,oneof=pending processing completed failed"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// ScrapeJob is a pipeline run record
type ScrapeJob struct {
	ID          string                 `json:"id,omitempty"`
	Status      ScrapeStatus           `json:"status"`
	Target      string                 `json:"target"`
	StartedAt   null.Time              `json:"startedAt"`
	CompletedAt null.Time              `json:"completedAt"`
	Results     map[string]interface{} `json:"results"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// Admin is an operator account marker
type Admin struct {
	ID          string    `json:"id,omitempty"`
	Email       string    `json:"email"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ScrapeRequestInput is the payload accepted by POST /scrape-requests
type ScrapeRequestInput struct {
	UniversityURL string `json:"universityUrl" validate:"required,url"`
}
