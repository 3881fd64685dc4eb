package shifts

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-SalonBooking/internal/service/shifts/models"
)

const timesheetSheet = "Табель"

var timesheetColumns = []string{"Мастер", "ID", "Дней", "Перерывы, мин", "Часы", "Сумма"}

// ExportTimesheet пишет табель за период в XLSX
func (s *Service) ExportTimesheet(ctx context.Context, req *models.TimesheetRequest, w io.Writer) error {
	sheet, err := s.Timesheet(ctx, req)
	if err != nil {
		return err
	}

	if err := writeTimesheetXLSX(sheet, w); err != nil {
		s.logger.Error("ExportTimesheet: failed to write xlsx: %v", err)
		return fmt.Errorf("%w: ExportTimesheet - xlsx: %v", ErrInternal, err)
	}
	return nil
}

func writeTimesheetXLSX(sheet *models.TimesheetResponse, w io.Writer) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName("Sheet1", timesheetSheet); err != nil {
		return err
	}

	row := 1
	if err := setRow(file, row, []interface{}{"Период", sheet.StartDate + " - " + sheet.EndDate}); err != nil {
		return err
	}

	row = 3
	header := make([]interface{}, len(timesheetColumns))
	for i, c := range timesheetColumns {
		header[i] = c
	}
	if err := setRow(file, row, header); err != nil {
		return err
	}

	style, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		first, _ := excelize.CoordinatesToCellName(1, row)
		last, _ := excelize.CoordinatesToCellName(len(timesheetColumns), row)
		_ = file.SetCellStyle(timesheetSheet, first, last, style)
	}

	for _, r := range sheet.Rows {
		row++
		values := []interface{}{r.TeamMemberName, r.TeamMemberID, r.DaysWorked, r.TotalBreakMinutes, r.NetHours, r.TotalPay}
		if err := setRow(file, row, values); err != nil {
			return err
		}
	}

	row++
	if err := setRow(file, row, []interface{}{"Итого", nil, nil, nil, sheet.TotalNetHours, sheet.TotalPay}); err != nil {
		return err
	}

	return file.Write(w)
}

func setRow(file *excelize.File, row int, values []interface{}) error {
	for i, v := range values {
		if v == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := file.SetCellValue(timesheetSheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}
