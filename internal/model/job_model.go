package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobdeck/api/internal/moderation"
	"gorm.io/datatypes"
)

type Job struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title      string    `gorm:"type:varchar(255)" json:"title"`
	TitleLower string    `gorm:"type:varchar(255);index" json:"title_lower"`
	Position   string    `gorm:"type:varchar(255)" json:"position"`
	Company    string    `gorm:"type:varchar(255)" json:"company"`

	Description string                      `gorm:"type:text" json:"description"`
	Keywords    datatypes.JSONSlice[string] `json:"keywords"`

	Category             string `gorm:"type:varchar(100)" json:"category"`
	Sector               string `gorm:"type:varchar(100)" json:"sector"`
	FunctionalArea       string `gorm:"type:varchar(100)" json:"functional_area"`
	Type                 string `gorm:"type:varchar(50)" json:"type"` // employment type, e.g. "Full-time"
	ExperienceLevel      string `gorm:"type:varchar(50)" json:"experience_level"`
	WorkOption           string `gorm:"type:varchar(50)" json:"work_option"` // remote / hybrid / onsite
	Travel               string `gorm:"type:varchar(50)" json:"travel"`
	TeamManagement       string `gorm:"type:varchar(10)" json:"team_management"`
	LeadershipExperience string `gorm:"type:varchar(10)" json:"leadership_experience"`

	Region   string `gorm:"type:varchar(100)" json:"region"`
	Country  string `gorm:"type:varchar(100)" json:"country"`
	City     string `gorm:"type:varchar(100)" json:"city"`
	Location string `gorm:"type:varchar(255)" json:"location"` // derived "city, country"

	Salary         string `gorm:"type:varchar(100)" json:"salary"`
	SalaryCurrency string `gorm:"type:varchar(10)" json:"salary_currency"`
	PayRange       string `gorm:"type:varchar(50)" json:"pay_range"`

	// The form caps both lists at 2 selections; the backend stores whatever
	// arrives.
	Education    datatypes.JSONSlice[string] `json:"education"`
	JobLanguages datatypes.JSONSlice[string] `json:"job_languages"`

	ApplyURL string `gorm:"type:varchar(500)" json:"apply_url"`

	CreatedBy    string            `gorm:"type:varchar(255)" json:"created_by"`
	CreatorEmail string            `gorm:"type:varchar(255);index" json:"creator_email"`
	Status       moderation.Status `gorm:"type:varchar(20);index" json:"status"`
	IsApproved   bool              `json:"is_approved"`
	ApprovedBy   string            `gorm:"type:varchar(255)" json:"approved_by,omitempty"`
	ApprovedAt   *time.Time        `json:"approved_at,omitempty"`
	RejectedBy   string            `gorm:"type:varchar(255)" json:"rejected_by,omitempty"`
	RejectedAt   *time.Time        `json:"rejected_at,omitempty"`
	RejectReason string            `gorm:"type:text" json:"reject_reason,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (j *Job) TableName() string {
	return "jobs"
}

// SyncDerived recomputes fields derived from other fields. Must run on every
// create or update that touches Title, City or Country.
func (j *Job) SyncDerived() {
	j.TitleLower = strings.ToLower(j.Title)
	switch {
	case j.City != "" && j.Country != "":
		j.Location = j.City + ", " + j.Country
	case j.City != "":
		j.Location = j.City
	default:
		j.Location = j.Country
	}
}
