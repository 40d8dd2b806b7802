package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/jobdeck/api/internal/model"
)

// JobInput carries every field a poster may set. Create and edit both apply
// the full set (edits are a full overwrite of the mutable fields).
type JobInput struct {
	Title       string   `json:"title"`
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`

	Category             string `json:"category"`
	Sector               string `json:"sector"`
	FunctionalArea       string `json:"functional_area"`
	Type                 string `json:"type"`
	ExperienceLevel      string `json:"experience_level"`
	WorkOption           string `json:"work_option"`
	Travel               string `json:"travel"`
	TeamManagement       string `json:"team_management"`
	LeadershipExperience string `json:"leadership_experience"`

	Region  string `json:"region"`
	Country string `json:"country"`
	City    string `json:"city"`

	Salary         string `json:"salary"`
	SalaryCurrency string `json:"salary_currency"`
	PayRange       string `json:"pay_range"`

	Education    []string `json:"education"`
	JobLanguages []string `json:"job_languages"`

	ApplyURL string `json:"apply_url"`
}

// Apply copies the input onto the job and recomputes derived fields.
func (in JobInput) Apply(job *model.Job) {
	job.Title = in.Title
	job.Position = in.Position
	job.Company = in.Company
	job.Description = in.Description
	job.Keywords = in.Keywords
	job.Category = in.Category
	job.Sector = in.Sector
	job.FunctionalArea = in.FunctionalArea
	job.Type = in.Type
	job.ExperienceLevel = in.ExperienceLevel
	job.WorkOption = in.WorkOption
	job.Travel = in.Travel
	job.TeamManagement = in.TeamManagement
	job.LeadershipExperience = in.LeadershipExperience
	job.Region = in.Region
	job.Country = in.Country
	job.City = in.City
	job.Salary = in.Salary
	job.SalaryCurrency = in.SalaryCurrency
	job.PayRange = in.PayRange
	job.Education = in.Education
	job.JobLanguages = in.JobLanguages
	job.ApplyURL = in.ApplyURL
	job.SyncDerived()
}

// PublicJob is the restricted field subset exposed by the public listing.
type PublicJob struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Position        string    `json:"position"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	Sector          string    `json:"sector"`
	Type            string    `json:"type"`
	ExperienceLevel string    `json:"experience_level"`
	WorkOption      string    `json:"work_option"`
	PayRange        string    `json:"pay_range"`
	ApplyURL        string    `json:"apply_url"`
	CreatedAt       time.Time `json:"created_at"`
}

func NewPublicJob(job model.Job) PublicJob {
	return PublicJob{
		ID:              job.ID,
		Title:           job.Title,
		Position:        job.Position,
		Company:         job.Company,
		Location:        job.Location,
		Sector:          job.Sector,
		Type:            job.Type,
		ExperienceLevel: job.ExperienceLevel,
		WorkOption:      job.WorkOption,
		PayRange:        job.PayRange,
		ApplyURL:        job.ApplyURL,
		CreatedAt:       job.CreatedAt,
	}
}
