// Package report renders analyses as printable documents.
package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"combgame/internal/domain/analysis"
)

const (
	cellSize   = 8.0
	maxBoardMM = 120.0
)

// Domineering writes a one page PDF with the board and its evaluation.
func Domineering(w io.Writer, res analysis.DomineeringResult) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Domineering position")
	pdf.Ln(14)

	drawBoard(pdf, res.Rows)

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range [][2]string{
		{"Cells", strconv.Itoa(res.Cells)},
		{"Positions", strconv.Itoa(res.Positions)},
		{"Birthday", strconv.Itoa(res.Birthday)},
		{"Left moves (vertical)", strconv.Itoa(res.LeftMoves)},
		{"Right moves (horizontal)", strconv.Itoa(res.RightMoves)},
		{"Outcome", fmt.Sprintf("%s: %s", res.Outcome, res.OutcomeDescription)},
		{"Value", valueOrDash(res.Value)},
	} {
		pdf.CellFormat(60, 7, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, row[1], "1", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Courier", "", 9)
	pdf.MultiCell(0, 4.5, res.Game, "", "L", false)

	return pdf.Output(w)
}

func drawBoard(pdf *gofpdf.Fpdf, rows []string) {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	size := cellSize
	if width > 0 && float64(width)*size > maxBoardMM {
		size = maxBoardMM / float64(width)
	}
	if len(rows) > 0 && float64(len(rows))*size > maxBoardMM {
		size = maxBoardMM / float64(len(rows))
	}

	left, top := pdf.GetX(), pdf.GetY()
	pdf.SetDrawColor(60, 60, 60)
	for i, row := range rows {
		for j, c := range row {
			x := left + float64(j)*size
			y := top + float64(i)*size
			if c == '#' {
				pdf.SetFillColor(235, 225, 200)
				pdf.Rect(x, y, size, size, "FD")
			} else {
				pdf.SetFillColor(90, 90, 90)
				pdf.Rect(x, y, size, size, "F")
			}
		}
	}
	pdf.SetXY(left, top+float64(len(rows))*size+8)
}

func valueOrDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
