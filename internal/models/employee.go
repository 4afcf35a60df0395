package models

import "time"

type Employee struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:100;not null" json:"name"`
	Department string    `gorm:"size:100" json:"department"`
	Position   string    `gorm:"size:100" json:"position"`
	Email      string    `gorm:"size:100;uniqueIndex" json:"email"`
	Enrolled   bool      `gorm:"not null;default:false" json:"enrolled"`
	Active     bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
