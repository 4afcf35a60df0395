package models

import "time"

// Status values written by the normal attendance flows.
const (
	StatusPresent = "present"
	StatusLate    = "late"
	StatusAbsent  = "absent"
)

// ValidStatus reports whether s is one of the enumerated attendance statuses.
func ValidStatus(s string) bool {
	return s == StatusPresent || s == StatusLate || s == StatusAbsent
}

// Attendance is one attendance row for one employee on one date.
// CheckIn and CheckOut stay nil until the matching action happens;
// manual absence entries keep both nil.
type Attendance struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	EmployeeID uint       `gorm:"index;not null" json:"employee_id"`
	Date       string     `gorm:"size:10;not null;index" json:"date"`
	CheckIn    *time.Time `json:"check_in"`
	CheckOut   *time.Time `json:"check_out"`
	Status     string     `gorm:"size:20;not null" json:"status"`
	Remarks    string     `gorm:"size:255" json:"remarks"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (Attendance) TableName() string {
	return "attendance"
}

func (a Attendance) ToMap() map[string]any {
	return map[string]any{
		"id":          a.ID,
		"employee_id": a.EmployeeID,
		"date":        a.Date,
		"check_in":    a.CheckIn,
		"check_out":   a.CheckOut,
		"status":      a.Status,
		"remarks":     a.Remarks,
	}
}

// AttendanceWithEmployee is the read shape for list endpoints: the row
// joined with the owning employee's display fields.
type AttendanceWithEmployee struct {
	Attendance
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`
	Position     string `json:"position"`
}
