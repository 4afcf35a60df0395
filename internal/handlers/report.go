package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/OrlanTero/newAttendance-sub000/internal/report"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

type ReportHandler struct {
	reports *report.Facade
}

func NewReportHandler(reports *report.Facade) *ReportHandler {
	return &ReportHandler{reports: reports}
}

func (h *ReportHandler) params(c *gin.Context) (report.ReportParams, bool) {
	p := report.ReportParams{
		DateFrom:        c.Query("date_from"),
		DateTo:          c.Query("date_to"),
		ExcludeWeekends: c.DefaultQuery("exclude_weekends", "true") == "true",
		ExcludeHolidays: c.DefaultQuery("exclude_holidays", "true") == "true",
	}
	if v, err := strconv.ParseUint(c.Query("employee_id"), 10, 32); err == nil {
		p.EmployeeID = uint(v)
	}
	if p.DateFrom == "" || p.DateTo == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "date_from and date_to are required"})
		return p, false
	}
	return p, true
}

func (h *ReportHandler) Attendance(c *gin.Context) {
	params, ok := h.params(c)
	if !ok {
		return
	}

	result, err := h.reports.Build(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to build report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// Export streams the report as an xlsx workbook.
func (h *ReportHandler) Export(c *gin.Context) {
	params, ok := h.params(c)
	if !ok {
		return
	}

	result, err := h.reports.Build(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to prepare export"})
		return
	}

	file := excelize.NewFile()
	sheet := file.GetSheetName(file.GetActiveSheetIndex())

	headers := []string{"No", "Employee", "Department", "Date", "Check In", "Check Out", "Status", "Hours", "Remarks"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = file.SetCellValue(sheet, cell, header)
	}

	for index, row := range result.Rows {
		r := index + 2
		_ = file.SetCellValue(sheet, fmt.Sprintf("A%d", r), index+1)
		_ = file.SetCellValue(sheet, fmt.Sprintf("B%d", r), row.EmployeeName)
		_ = file.SetCellValue(sheet, fmt.Sprintf("C%d", r), row.Department)
		_ = file.SetCellValue(sheet, fmt.Sprintf("D%d", r), row.Date)
		_ = file.SetCellValue(sheet, fmt.Sprintf("E%d", r), formatStamp(row.CheckIn))
		_ = file.SetCellValue(sheet, fmt.Sprintf("F%d", r), formatStamp(row.CheckOut))
		_ = file.SetCellValue(sheet, fmt.Sprintf("G%d", r), row.Status)
		_ = file.SetCellValue(sheet, fmt.Sprintf("H%d", r), row.HoursWorked)
		_ = file.SetCellValue(sheet, fmt.Sprintf("I%d", r), row.Remarks)
	}

	summaryRow := len(result.Rows) + 3
	_ = file.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "Working days")
	_ = file.SetCellValue(sheet, fmt.Sprintf("B%d", summaryRow), result.Summary.WorkingDays)
	_ = file.SetCellValue(sheet, fmt.Sprintf("C%d", summaryRow), "Present")
	_ = file.SetCellValue(sheet, fmt.Sprintf("D%d", summaryRow), result.Summary.PresentDays)
	_ = file.SetCellValue(sheet, fmt.Sprintf("E%d", summaryRow), "Late")
	_ = file.SetCellValue(sheet, fmt.Sprintf("F%d", summaryRow), result.Summary.LateDays)
	_ = file.SetCellValue(sheet, fmt.Sprintf("G%d", summaryRow), "Absent")
	_ = file.SetCellValue(sheet, fmt.Sprintf("H%d", summaryRow), result.Summary.AbsentDays)

	buffer, err := file.WriteToBuffer()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "failed to export report"})
		return
	}

	filename := fmt.Sprintf("attendance-report-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	_, _ = c.Writer.Write(buffer.Bytes())
}

func formatStamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
