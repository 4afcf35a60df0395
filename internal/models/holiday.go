package models

import "time"

// Holiday marks a calendar date excluded from working-day counts.
// Recurring holidays repeat every year on the same month and day.
type Holiday struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Date      string    `gorm:"size:10;not null;index" json:"date"`
	Recurring bool      `gorm:"not null;default:false" json:"recurring"`
	CreatedAt time.Time `json:"created_at"`
}

func (Holiday) TableName() string {
	return "holidays"
}
