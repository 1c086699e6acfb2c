package export

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"terralot/internal/model"
)

const dateFormat = "2006-01-02"

var taskColumns = []string{"Title", "Due Date", "Priority", "Status", "Category", "Lot", "Assigned To", "Notes"}

var infrastructureColumns = []string{"Lot", "Type", "Status", "Last Inspection", "Next Inspection", "Notes"}

func writeTaskWorkbook(tasks []model.Task, path string) error {
	rows := make([][]any, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []any{
			t.Title,
			t.DueDate.Format(dateFormat),
			string(t.Priority),
			string(t.Status),
			t.Category,
			t.LotID,
			t.AssignedTo,
			t.Notes,
		})
	}
	return writeWorkbook("Tasks", taskColumns, rows, path)
}

func writeInfrastructureWorkbook(items []model.Infrastructure, path string) error {
	rows := make([][]any, 0, len(items))
	for _, inf := range items {
		rows = append(rows, []any{
			inf.LotID,
			inf.Type,
			inf.Status,
			inf.LastInspection.Format(dateFormat),
			inf.NextInspection.Format(dateFormat),
			inf.Notes,
		})
	}
	return writeWorkbook("Infrastructure", infrastructureColumns, rows, path)
}

func writeWorkbook(sheet string, columns []string, rows [][]any, path string) error {
	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
	})
	if err != nil {
		return err
	}
	for i, col := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return err
		}
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return err
	}

	now := time.Now().Format(dateFormat)
	if err := f.SetDocProps(&excelize.DocProperties{
		Title:   fmt.Sprintf("%s export %s", sheet, now),
		Creator: "terralot",
	}); err != nil {
		return err
	}
	return f.SaveAs(path)
}
