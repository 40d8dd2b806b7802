package model

import "time"

// FilterCategory is a named group of filter values shown as one search
// control, e.g. "work_option" or "experience_level".
type FilterCategory struct {
	ID          string    `gorm:"type:varchar(100);primaryKey" json:"id"` // snake_case slug
	Name        string    `gorm:"type:varchar(255)" json:"name"`
	MultiSelect bool      `json:"multi_select"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *FilterCategory) TableName() string {
	return "filter_categories"
}

// FilterValue is one selectable option inside a category. UsageCount is
// incremented whenever a search applies the value.
type FilterValue struct {
	ID         string    `gorm:"type:varchar(100);primaryKey" json:"id"` // snake_case slug
	CategoryID string    `gorm:"type:varchar(100);index" json:"category_id"`
	Label      string    `gorm:"type:varchar(255)" json:"label"`
	UsageCount int64     `json:"usage_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (v *FilterValue) TableName() string {
	return "filter_values"
}
