package services

import (
	"fmt"

	"github.com/hourglass/timesheet/internal/models"
	"github.com/hourglass/timesheet/internal/repositories"
	"github.com/xuri/excelize/v2"
)

// ExportService renders the admin timesheet view as an Excel workbook.
type ExportService struct {
	logRepo *repositories.WeeklyLogRepository
}

func NewExportService(logRepo *repositories.WeeklyLogRepository) *ExportService {
	return &ExportService{
		logRepo: logRepo,
	}
}

const exportSheet = "Timesheet"

var exportHeaders = []string{
	"Employee", "Employee ID", "Project", "Task Type", "ISO Year", "Week",
	"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun", "Total", "Status",
}

// ExportLogs builds a workbook with one row per weekly log, optionally
// narrowed by ISO year and week number. The caller owns closing the file.
func (s *ExportService) ExportLogs(isoYear, weekNumber *int) (*excelize.File, error) {
	logs, err := s.logRepo.FindAll(isoYear, weekNumber)
	if err != nil {
		return nil, &models.StorageError{Op: "list weekly logs", Err: err}
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	for col, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(exportSheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, log := range logs {
		values := []interface{}{
			log.EmployeeName, log.EmployeeID, log.ProjectName, log.TaskTypeName,
			log.ISOYear, log.WeekNumber,
			log.Days.Mon, log.Days.Tue, log.Days.Wed, log.Days.Thu,
			log.Days.Fri, log.Days.Sat, log.Days.Sun,
			log.Days.Total(), log.Status,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(exportSheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

// ExportFileName builds the download name for the given filter.
func ExportFileName(isoYear, weekNumber *int) string {
	name := "timesheet"
	if isoYear != nil {
		name = fmt.Sprintf("%s-%d", name, *isoYear)
	}
	if weekNumber != nil {
		name = fmt.Sprintf("%s-w%02d", name, *weekNumber)
	}
	return name + ".xlsx"
}
