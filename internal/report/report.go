package report

import (
	"math"
	"time"

	"github.com/OrlanTero/newAttendance-sub000/internal/models"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Facade answers the read-side questions: filtered, paginated record lists
// and per-range attendance summaries.
type Facade struct {
	db *gorm.DB
}

func NewFacade(db *gorm.DB) *Facade {
	return &Facade{db: db}
}

type FilterParams struct {
	EmployeeID uint
	Department string
	Status     string
	DateFrom   string
	DateTo     string
	Page       int
	Limit      int
}

type Page struct {
	Data       []models.AttendanceWithEmployee `json:"data"`
	Total      int                             `json:"total"`
	Page       int                             `json:"page"`
	Limit      int                             `json:"limit"`
	TotalPages int                             `json:"totalPages"`
}

// Filter returns one page of matching records plus the total match count.
// The full matching set is loaded and sliced; with a local single-user
// database that stays cheap and keeps the count exact.
func (f *Facade) Filter(p FilterParams) (*Page, error) {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 10
	}

	query := f.db.Table("attendance").
		Select("attendance.*, employees.name AS employee_name, employees.department AS department, employees.position AS position").
		Joins("LEFT JOIN employees ON employees.id = attendance.employee_id")

	if p.EmployeeID != 0 {
		query = query.Where("attendance.employee_id = ?", p.EmployeeID)
	}
	if p.Department != "" {
		query = query.Where("employees.department = ?", p.Department)
	}
	if p.Status != "" {
		query = query.Where("attendance.status = ?", p.Status)
	}
	if p.DateFrom != "" {
		query = query.Where("attendance.date >= ?", p.DateFrom)
	}
	if p.DateTo != "" {
		query = query.Where("attendance.date <= ?", p.DateTo)
	}

	var all []models.AttendanceWithEmployee
	if err := query.Order("attendance.date DESC, attendance.check_in DESC").Scan(&all).Error; err != nil {
		return nil, err
	}

	total := len(all)
	totalPages := (total + p.Limit - 1) / p.Limit

	start := (p.Page - 1) * p.Limit
	if start > total {
		start = total
	}
	end := start + p.Limit
	if end > total {
		end = total
	}

	return &Page{
		Data:       all[start:end],
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
	}, nil
}

type ReportParams struct {
	DateFrom        string
	DateTo          string
	EmployeeID      uint
	ExcludeWeekends bool
	ExcludeHolidays bool
}

type ReportRow struct {
	models.AttendanceWithEmployee
	HoursWorked float64 `json:"hours_worked"`
}

type Summary struct {
	WorkingDays int     `json:"working_days"`
	PresentDays int     `json:"present_days"`
	LateDays    int     `json:"late_days"`
	AbsentDays  int     `json:"absent_days"`
	TotalHours  float64 `json:"total_hours"`
}

type Report struct {
	Rows    []ReportRow `json:"rows"`
	Summary Summary     `json:"summary"`
}

// Build assembles the attendance report for a date range: per-record hours
// worked plus the present/late/absent summary. A day counts as present only
// when both timestamps are stamped; absence is working days minus present
// days.
func (f *Facade) Build(p ReportParams) (*Report, error) {
	filter := FilterParams{
		EmployeeID: p.EmployeeID,
		DateFrom:   p.DateFrom,
		DateTo:     p.DateTo,
		Page:       1,
		Limit:      math.MaxInt32,
	}
	page, err := f.Filter(filter)
	if err != nil {
		return nil, err
	}

	var holidays map[string]bool
	if p.ExcludeHolidays {
		holidays, err = f.holidaySet(p.DateFrom, p.DateTo)
		if err != nil {
			return nil, err
		}
	}

	report := &Report{Rows: make([]ReportRow, 0, len(page.Data))}
	for _, rec := range page.Data {
		hours := HoursWorked(rec.CheckIn, rec.CheckOut)
		report.Rows = append(report.Rows, ReportRow{AttendanceWithEmployee: rec, HoursWorked: hours})
		report.Summary.TotalHours += hours

		if rec.CheckIn != nil && rec.CheckOut != nil {
			report.Summary.PresentDays++
		}
		if rec.Status == models.StatusLate {
			report.Summary.LateDays++
		}
	}
	report.Summary.TotalHours = round2(report.Summary.TotalHours)

	working, err := WorkingDays(p.DateFrom, p.DateTo, p.ExcludeWeekends, holidays)
	if err != nil {
		return nil, err
	}
	report.Summary.WorkingDays = working

	absent := working - report.Summary.PresentDays
	if absent < 0 {
		absent = 0
	}
	report.Summary.AbsentDays = absent

	return report, nil
}

// holidaySet expands the holiday table into the concrete dates falling in
// the range, including yearly recurring holidays.
func (f *Facade) holidaySet(from, to string) (map[string]bool, error) {
	var rows []models.Holiday
	if err := f.db.Find(&rows).Error; err != nil {
		return nil, err
	}

	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool)
	for _, h := range rows {
		d, err := time.Parse(dateLayout, h.Date)
		if err != nil {
			continue
		}
		if !h.Recurring {
			set[h.Date] = true
			continue
		}
		for year := start.Year(); year <= end.Year(); year++ {
			set[time.Date(year, d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).Format(dateLayout)] = true
		}
	}
	return set, nil
}

// HoursWorked computes (checkOut - checkIn) in hours rounded to two
// decimals, or 0 when either timestamp is missing.
func HoursWorked(checkIn, checkOut *time.Time) float64 {
	if checkIn == nil || checkOut == nil {
		return 0
	}
	return round2(checkOut.Sub(*checkIn).Hours())
}

// WorkingDays counts the calendar days between from and to inclusive,
// dropping weekends and the supplied holiday dates when asked to.
func WorkingDays(from, to string, excludeWeekends bool, holidays map[string]bool) (int, error) {
	start, err := time.Parse(dateLayout, from)
	if err != nil {
		return 0, err
	}
	end, err := time.Parse(dateLayout, to)
	if err != nil {
		return 0, err
	}

	count := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if excludeWeekends && (d.Weekday() == time.Saturday || d.Weekday() == time.Sunday) {
			continue
		}
		if holidays != nil && holidays[d.Format(dateLayout)] {
			continue
		}
		count++
	}
	return count, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
