package attendance

import (
	"testing"
	"time"

	"github.com/OrlanTero/newAttendance-sub000/internal/config"
	"github.com/OrlanTero/newAttendance-sub000/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Employee{}, &models.Attendance{}))

	require.NoError(t, db.Create(&models.Employee{
		Name:       "Alice Reyes",
		Department: "Engineering",
		Position:   "Developer",
		Active:     true,
	}).Error)

	return NewService(db, config.ShiftConfig{StartHour: 8, GraceMinutes: 15})
}

func TestCheckInThenCheckOutOrdering(t *testing.T) {
	s := setupService(t)

	record, err := s.CheckIn(1, "")
	require.NoError(t, err)
	require.NotNil(t, record.CheckIn)
	assert.Equal(t, uint(1), record.EmployeeID)

	out, err := s.CheckOut(record.ID)
	require.NoError(t, err)
	require.NotNil(t, out.CheckOut)
	assert.False(t, out.CheckOut.Before(*out.CheckIn), "check-out must not precede check-in")
}

func TestCheckInRequiresEmployee(t *testing.T) {
	s := setupService(t)

	_, err := s.CheckIn(0, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCheckInLateAfterGrace(t *testing.T) {
	s := setupService(t)
	s.now = func() time.Time {
		return time.Date(2024, 1, 10, 8, 20, 0, 0, time.UTC)
	}

	record, err := s.CheckIn(1, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusLate, record.Status)
	assert.Equal(t, "2024-01-10", record.Date)

	s.now = func() time.Time {
		return time.Date(2024, 1, 10, 17, 0, 0, 0, time.UTC)
	}
	out, err := s.CheckOut(record.ID)
	require.NoError(t, err)
	assert.InDelta(t, 8.67, out.CheckOut.Sub(*out.CheckIn).Hours(), 0.01)
}

func TestCheckInWithinGraceIsPresent(t *testing.T) {
	s := setupService(t)
	s.now = func() time.Time {
		return time.Date(2024, 1, 10, 8, 10, 0, 0, time.UTC)
	}

	record, err := s.CheckIn(1, "")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPresent, record.Status)
}

func TestDuplicateCheckInAllowed(t *testing.T) {
	s := setupService(t)

	first, err := s.CheckIn(1, "2024-01-10")
	require.NoError(t, err)
	second, err := s.CheckIn(1, "2024-01-10")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestCheckOutMissingRecord(t *testing.T) {
	s := setupService(t)

	_, err := s.CheckOut(99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateValidation(t *testing.T) {
	s := setupService(t)

	_, err := s.Create(CreateInput{Date: "2024-01-10"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.Create(CreateInput{EmployeeID: 1})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.Create(CreateInput{EmployeeID: 1, Date: "10/01/2024"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateDefaults(t *testing.T) {
	s := setupService(t)

	record, err := s.Create(CreateInput{EmployeeID: 1, Date: "2024-01-10"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPresent, record.Status)
	assert.NotNil(t, record.CheckIn)
}

func TestCreateRejectsReversedTimestamps(t *testing.T) {
	s := setupService(t)

	in := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	out := in.Add(-time.Hour)
	_, err := s.Create(CreateInput{EmployeeID: 1, Date: "2024-01-10", CheckIn: &in, CheckOut: &out})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateManualLogAbsence(t *testing.T) {
	s := setupService(t)

	record, err := s.CreateManualLog(CreateInput{
		EmployeeID: 1,
		Date:       "2024-02-01",
		Status:     models.StatusAbsent,
	})
	require.NoError(t, err)
	assert.Nil(t, record.CheckIn)
	assert.Nil(t, record.CheckOut)
	assert.Equal(t, DefaultManualRemarks, record.Remarks)

	got, err := s.GetByEmployeeAndDate(1, "2024-02-01")
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, DefaultManualRemarks, got.Remarks)
	assert.Equal(t, "Alice Reyes", got.EmployeeName)
}

func TestCreateManualLogRejectsUnknownStatus(t *testing.T) {
	s := setupService(t)

	_, err := s.CreateManualLog(CreateInput{EmployeeID: 1, Date: "2024-02-01", Status: "vacation"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateNoFields(t *testing.T) {
	s := setupService(t)

	record, err := s.CheckIn(1, "")
	require.NoError(t, err)

	_, err = s.Update(record.ID, UpdateInput{})
	assert.ErrorIs(t, err, ErrNoFields)
}

func TestUpdateMissingRecord(t *testing.T) {
	s := setupService(t)

	status := models.StatusLate
	_, err := s.Update(42, UpdateInput{Status: &status})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdatePartialFields(t *testing.T) {
	s := setupService(t)

	record, err := s.CheckIn(1, "2024-01-10")
	require.NoError(t, err)

	remarks := "corrected by admin"
	status := models.StatusLate
	updated, err := s.Update(record.ID, UpdateInput{Status: &status, Remarks: &remarks})
	require.NoError(t, err)

	got, err := s.GetByID(updated.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusLate, got.Status)
	assert.Equal(t, remarks, got.Remarks)
	assert.Equal(t, record.CheckIn.Unix(), got.CheckIn.Unix())
}

func TestUpdateRejectsReversedTimestamps(t *testing.T) {
	s := setupService(t)

	record, err := s.CheckIn(1, "2024-01-10")
	require.NoError(t, err)

	out := record.CheckIn.Add(-time.Hour)
	_, err = s.Update(record.ID, UpdateInput{CheckOut: &out})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeleteMissingRecordIsReportedNotFatal(t *testing.T) {
	s := setupService(t)

	ok, err := s.Delete(1234)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDelete(t *testing.T) {
	s := setupService(t)

	record, err := s.CheckIn(1, "")
	require.NoError(t, err)

	ok, err := s.Delete(record.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = s.GetByID(record.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAllOrdering(t *testing.T) {
	s := setupService(t)

	mk := func(date string, hour int) {
		in := time.Date(2024, 1, 1, hour, 0, 0, 0, time.UTC)
		_, err := s.Create(CreateInput{EmployeeID: 1, Date: date, CheckIn: &in})
		require.NoError(t, err)
	}
	mk("2024-01-08", 8)
	mk("2024-01-10", 9)
	mk("2024-01-10", 8)
	mk("2024-01-09", 8)

	records, err := s.GetAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, "2024-01-10", records[0].Date)
	assert.Equal(t, "2024-01-10", records[1].Date)
	assert.True(t, records[0].CheckIn.After(*records[1].CheckIn))
	assert.Equal(t, "2024-01-09", records[2].Date)
	assert.Equal(t, "2024-01-08", records[3].Date)
}

func TestGetByEmployee(t *testing.T) {
	s := setupService(t)

	require.NoError(t, s.db.Create(&models.Employee{Name: "Dan Ocampo", Active: true}).Error)

	_, err := s.CheckIn(1, "2024-01-10")
	require.NoError(t, err)
	_, err = s.CheckIn(2, "2024-01-10")
	require.NoError(t, err)
	_, err = s.CheckIn(1, "2024-01-11")
	require.NoError(t, err)

	records, err := s.GetByEmployee(1)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, uint(1), rec.EmployeeID)
		assert.Equal(t, "Alice Reyes", rec.EmployeeName)
	}
	assert.Equal(t, "2024-01-11", records[0].Date)
}

func TestGetByDateAscending(t *testing.T) {
	s := setupService(t)

	for _, hour := range []int{10, 8, 9} {
		in := time.Date(2024, 1, 10, hour, 0, 0, 0, time.UTC)
		_, err := s.Create(CreateInput{EmployeeID: 1, Date: "2024-01-10", CheckIn: &in})
		require.NoError(t, err)
	}

	records, err := s.GetByDate("2024-01-10")
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].CheckIn.Before(*records[i-1].CheckIn))
	}
}
