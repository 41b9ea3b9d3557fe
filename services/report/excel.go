package report

import (
	"bytes"
	"fmt"
	"time"

	"caredesk/models"

	"github.com/360EntSecGroup-Skylar/excelize"
)

// BuildExcel renders the same report table as an .xlsx workbook for
// receptionists who post-process the numbers in a spreadsheet.
func BuildExcel(patients []models.Patient) ([]byte, error) {
	file := excelize.NewFile()
	sheet := "Payments"
	file.NewSheet(sheet)
	file.DeleteSheet("Sheet1")

	for col, title := range csvHeader {
		cell := fmt.Sprintf("%s1", columnName(col))
		file.SetCellValue(sheet, cell, title)
	}

	for i := range patients {
		appendPatientRow(sheet, file, i, &patients[i])
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render excel report: %w", err)
	}
	return buf.Bytes(), nil
}

func appendPatientRow(sheet string, file *excelize.File, index int, p *models.Patient) {
	rowCount := index + 2
	file.SetCellValue(sheet, fmt.Sprintf("A%v", rowCount), p.DisplayName())
	file.SetCellValue(sheet, fmt.Sprintf("B%v", rowCount), p.ResolvedParentName())
	file.SetCellValue(sheet, fmt.Sprintf("C%v", rowCount), p.ResolvedContact())
	file.SetCellValue(sheet, fmt.Sprintf("D%v", rowCount), p.TotalAppointments)
	file.SetCellValue(sheet, fmt.Sprintf("E%v", rowCount), p.CompletedAppointments)
	file.SetCellValue(sheet, fmt.Sprintf("F%v", rowCount), p.TotalOwed)
	file.SetCellValue(sheet, fmt.Sprintf("G%v", rowCount), p.TotalPaid)
	file.SetCellValue(sheet, fmt.Sprintf("H%v", rowCount), p.PendingPayments)
	file.SetCellValue(sheet, fmt.Sprintf("I%v", rowCount), paymentStatusLabel(p))
}

func columnName(index int) string {
	return string(rune('A' + index))
}

// ExcelFilename returns the download name for an .xlsx report.
func ExcelFilename(now time.Time) string {
	return fmt.Sprintf("patient-payment-report-%s.xlsx", now.Format("2006-01-02"))
}
