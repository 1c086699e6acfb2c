package export

import (
	"time"

	"github.com/jung-kurt/gofpdf"

	"terralot/internal/model"
)

func writeTaskPDF(tasks []model.Task, path string) error {
	widths := []float64{50, 25, 20, 25, 25, 35}
	headers := []string{"Title", "Due Date", "Priority", "Status", "Category", "Notes"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{
			t.Title,
			t.DueDate.Format(dateFormat),
			string(t.Priority),
			string(t.Status),
			t.Category,
			t.Notes,
		})
	}
	return writePDFTable("Task Report", headers, widths, rows, path)
}

func writeInfrastructurePDF(items []model.Infrastructure, path string) error {
	widths := []float64{35, 30, 30, 30, 30, 25}
	headers := []string{"Lot", "Type", "Status", "Last Inspection", "Next Inspection", "Notes"}
	rows := make([][]string, 0, len(items))
	for _, inf := range items {
		rows = append(rows, []string{
			inf.LotID,
			inf.Type,
			inf.Status,
			inf.LastInspection.Format(dateFormat),
			inf.NextInspection.Format(dateFormat),
			inf.Notes,
		})
	}
	return writePDFTable("Maintenance Report", headers, widths, rows, path)
}

func writePDFTable(title string, headers []string, widths []float64, rows [][]string, path string) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, "Generated "+time.Now().Format(dateFormat), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(68, 114, 196)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for r, row := range rows {
		fill := r%2 == 1
		pdf.SetFillColor(242, 242, 242)
		for i, value := range row {
			pdf.CellFormat(widths[i], 7, value, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	return pdf.OutputFileAndClose(path)
}
