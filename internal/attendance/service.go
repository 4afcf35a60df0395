package attendance

import (
	"errors"
	"fmt"
	"time"

	"github.com/OrlanTero/newAttendance-sub000/internal/config"
	"github.com/OrlanTero/newAttendance-sub000/internal/models"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// DefaultManualRemarks is written when an admin creates a manual log
// without supplying remarks.
const DefaultManualRemarks = "Manual entry by admin"

// Service owns the attendance record lifecycle: check-in/out, manual
// entries, updates and reads. All storage access goes through the injected
// gorm handle.
type Service struct {
	db    *gorm.DB
	shift config.ShiftConfig
	now   func() time.Time
}

func NewService(db *gorm.DB, shift config.ShiftConfig) *Service {
	return &Service{db: db, shift: shift, now: time.Now}
}

// CheckIn records a new attendance row for the employee with the check-in
// timestamp set to now and the status derived from the shift schedule.
// Duplicate check-ins for the same employee and date are allowed; callers
// that care should look up GetByEmployeeAndDate first.
func (s *Service) CheckIn(employeeID uint, date string) (*models.Attendance, error) {
	if employeeID == 0 {
		return nil, fmt.Errorf("%w: employee_id is required", ErrValidation)
	}

	now := s.now()
	if date == "" {
		date = now.Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	record := models.Attendance{
		EmployeeID: employeeID,
		Date:       date,
		CheckIn:    &now,
		Status:     Classify(now, s.shift.StartHour, s.shift.GraceMinutes),
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// CheckOut stamps the check-out time on an existing record.
func (s *Service) CheckOut(id uint) (*models.Attendance, error) {
	var record models.Attendance
	if err := s.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := s.now()
	if record.CheckIn != nil && now.Before(*record.CheckIn) {
		return nil, fmt.Errorf("%w: check-out before check-in", ErrValidation)
	}

	record.CheckOut = &now
	result := s.db.Model(&record).Update("check_out", &now)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &record, nil
}

// CreateInput carries the fields accepted for a direct record creation.
type CreateInput struct {
	EmployeeID uint
	Date       string
	CheckIn    *time.Time
	CheckOut   *time.Time
	Status     string
	Remarks    string
}

// Create inserts a record from explicit data. Check-in defaults to now and
// status to "present" when omitted.
func (s *Service) Create(in CreateInput) (*models.Attendance, error) {
	if in.EmployeeID == 0 {
		return nil, fmt.Errorf("%w: employee_id is required", ErrValidation)
	}
	if in.Date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}
	if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	if in.CheckIn == nil {
		now := s.now()
		in.CheckIn = &now
	}
	if in.Status == "" {
		in.Status = models.StatusPresent
	}
	if !models.ValidStatus(in.Status) {
		return nil, fmt.Errorf("%w: status must be present, late or absent", ErrValidation)
	}
	if err := checkOrdering(in.CheckIn, in.CheckOut); err != nil {
		return nil, err
	}

	record := models.Attendance{
		EmployeeID: in.EmployeeID,
		Date:       in.Date,
		CheckIn:    in.CheckIn,
		CheckOut:   in.CheckOut,
		Status:     in.Status,
		Remarks:    in.Remarks,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// CreateManualLog inserts an admin-authored record. Unlike Create, both
// timestamps may stay nil, which is how an absence is marked.
func (s *Service) CreateManualLog(in CreateInput) (*models.Attendance, error) {
	if in.EmployeeID == 0 {
		return nil, fmt.Errorf("%w: employee_id is required", ErrValidation)
	}
	if in.Date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}
	if _, err := time.Parse(dateLayout, in.Date); err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	if in.Status == "" {
		in.Status = models.StatusPresent
	}
	if !models.ValidStatus(in.Status) {
		return nil, fmt.Errorf("%w: status must be present, late or absent", ErrValidation)
	}
	if err := checkOrdering(in.CheckIn, in.CheckOut); err != nil {
		return nil, err
	}
	if in.Remarks == "" {
		in.Remarks = DefaultManualRemarks
	}

	record := models.Attendance{
		EmployeeID: in.EmployeeID,
		Date:       in.Date,
		CheckIn:    in.CheckIn,
		CheckOut:   in.CheckOut,
		Status:     in.Status,
		Remarks:    in.Remarks,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// UpdateInput lists the updatable fields; nil means "leave untouched".
type UpdateInput struct {
	CheckIn  *time.Time
	CheckOut *time.Time
	Status   *string
	Remarks  *string
}

// Update applies the supplied subset of fields to an existing record.
func (s *Service) Update(id uint, in UpdateInput) (*models.Attendance, error) {
	updates := map[string]any{}
	if in.CheckIn != nil {
		updates["check_in"] = in.CheckIn
	}
	if in.CheckOut != nil {
		updates["check_out"] = in.CheckOut
	}
	if in.Status != nil {
		if !models.ValidStatus(*in.Status) {
			return nil, fmt.Errorf("%w: status must be present, late or absent", ErrValidation)
		}
		updates["status"] = *in.Status
	}
	if in.Remarks != nil {
		updates["remarks"] = *in.Remarks
	}
	if len(updates) == 0 {
		return nil, ErrNoFields
	}

	var record models.Attendance
	if err := s.db.First(&record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	checkIn := record.CheckIn
	if in.CheckIn != nil {
		checkIn = in.CheckIn
	}
	checkOut := record.CheckOut
	if in.CheckOut != nil {
		checkOut = in.CheckOut
	}
	if err := checkOrdering(checkIn, checkOut); err != nil {
		return nil, err
	}

	if err := s.db.Model(&record).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Delete removes a record. A missing id is reported, not fatal: the
// returned bool is false and err is nil.
func (s *Service) Delete(id uint) (bool, error) {
	result := s.db.Delete(&models.Attendance{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

const employeeJoin = "LEFT JOIN employees ON employees.id = attendance.employee_id"
const joinedColumns = "attendance.*, employees.name AS employee_name, employees.department AS department, employees.position AS position"

func (s *Service) joined() *gorm.DB {
	return s.db.Table("attendance").Select(joinedColumns).Joins(employeeJoin)
}

// GetAll returns every record, newest date first.
func (s *Service) GetAll() ([]models.AttendanceWithEmployee, error) {
	var records []models.AttendanceWithEmployee
	err := s.joined().
		Order("attendance.date DESC, attendance.check_in DESC").
		Scan(&records).Error
	return records, err
}

func (s *Service) GetByID(id uint) (*models.AttendanceWithEmployee, error) {
	var record models.AttendanceWithEmployee
	result := s.joined().Where("attendance.id = ?", id).Limit(1).Scan(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &record, nil
}

func (s *Service) GetByEmployee(employeeID uint) ([]models.AttendanceWithEmployee, error) {
	var records []models.AttendanceWithEmployee
	err := s.joined().
		Where("attendance.employee_id = ?", employeeID).
		Order("attendance.date DESC, attendance.check_in DESC").
		Scan(&records).Error
	return records, err
}

// GetByDate lists one day's records in check-in order.
func (s *Service) GetByDate(date string) ([]models.AttendanceWithEmployee, error) {
	var records []models.AttendanceWithEmployee
	err := s.joined().
		Where("attendance.date = ?", date).
		Order("attendance.check_in ASC").
		Scan(&records).Error
	return records, err
}

func (s *Service) GetByEmployeeAndDate(employeeID uint, date string) (*models.AttendanceWithEmployee, error) {
	var record models.AttendanceWithEmployee
	result := s.joined().
		Where("attendance.employee_id = ? AND attendance.date = ?", employeeID, date).
		Order("attendance.check_in ASC").
		Limit(1).
		Scan(&record)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return &record, nil
}

func checkOrdering(checkIn, checkOut *time.Time) error {
	if checkIn != nil && checkOut != nil && checkOut.Before(*checkIn) {
		return fmt.Errorf("%w: check_out must not precede check_in", ErrValidation)
	}
	return nil
}
