package models

import "time"

// ScheduleSlot is one bookable time point in the weekly template.
// The template is date-independent: weekday 0 (Sunday) through 6 (Saturday),
// time of day as "HH:MM".
type ScheduleSlot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Weekday   int    `gorm:"index:idx_schedule_weekday" json:"weekday"`
	TimeOfDay string `gorm:"size:5;not null" json:"time_of_day"`
	Active    bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
