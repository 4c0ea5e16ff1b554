package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{
	"Fecha", "ID Empleado", "Nombre", "Departamento",
	"Entrada", "Salida", "Tarde", "Horas Trabajadas", "Dirección",
}

// WriteExcel renders report rows as an xlsx workbook onto w. Event IDs are
// internal and never exported.
func WriteExcel(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Asistencias"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DDDDDD"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("excel header style: %w", err)
	}

	for i, header := range exportHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("excel header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("excel header value: %w", err)
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("excel header style: %w", err)
		}
	}

	for i, row := range rows {
		late := "No"
		if row.Late {
			late = "Sí"
		}
		address := ""
		if row.Address != nil {
			address = *row.Address
		}
		values := []interface{}{
			row.Date, row.EmployeeID, row.EmployeeName, row.Department,
			row.CheckIn, row.CheckOut, late, row.Worked, address,
		}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return fmt.Errorf("excel cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("excel value: %w", err)
			}
		}
	}

	for i := range exportHeaders {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("excel column: %w", err)
		}
		if err := f.SetColWidth(sheet, col, col, 18); err != nil {
			return fmt.Errorf("excel column width: %w", err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("excel write: %w", err)
	}
	return nil
}
