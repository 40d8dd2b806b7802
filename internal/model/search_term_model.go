package model

import "time"

// SearchTerm aggregates how often a free-text query has been searched.
// Rows are written by the analytics flush job, not the request path.
type SearchTerm struct {
	Term      string    `gorm:"type:varchar(255);primaryKey" json:"term"`
	Count     int64     `json:"count"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *SearchTerm) TableName() string {
	return "search_terms"
}
