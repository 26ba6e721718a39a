// Package export renders a trainer's collection as a downloadable PDF.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/Jose-https1/pokedex-api/pkg/models"
)

// ContentType is the MIME type of the rendered document.
const ContentType = "application/pdf"

// Filename builds the suggested download name for a trainer's export.
func Filename(username string) string {
	return fmt.Sprintf("pokedex-%s-%s.pdf", username, time.Now().UTC().Format("2006-01-02"))
}

// RenderPokedex writes the trainer's entries as a one-table PDF. An empty
// collection still renders a valid document with the header and a note.
func RenderPokedex(username string, entries []models.PokedexEntry) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Pokedex of %s", username), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, fmt.Sprintf("Pokedex of %s", username))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Exported %s  |  %d entries", time.Now().UTC().Format("2006-01-02 15:04 UTC"), len(entries)))
	pdf.Ln(10)

	if len(entries) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 8, "No Pokemon caught yet.")
		if err := checkErr(pdf); err != nil {
			return nil, err
		}
		return output(pdf)
	}

	writeTableHeader(pdf)

	pdf.SetFont("Helvetica", "", 10)
	for _, entry := range entries {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			writeTableHeader(pdf)
			pdf.SetFont("Helvetica", "", 10)
		}
		writeEntryRow(pdf, entry)
	}

	if err := checkErr(pdf); err != nil {
		return nil, err
	}
	return output(pdf)
}

func writeTableHeader(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(220, 50, 50)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(15, 8, "No.", "1", 0, "C", true, 0, "")
	pdf.CellFormat(45, 8, "Name", "1", 0, "L", true, 0, "")
	pdf.CellFormat(45, 8, "Nickname", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Captured", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 8, "Capture date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 8, "Favorite", "1", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func writeEntryRow(pdf *fpdf.Fpdf, entry models.PokedexEntry) {
	nickname := ""
	if entry.Nickname != nil {
		nickname = *entry.Nickname
	}
	captured := "no"
	if entry.IsCaptured {
		captured = "yes"
	}
	captureDate := "-"
	if entry.CaptureDate != nil {
		captureDate = entry.CaptureDate.UTC().Format("2006-01-02")
	}
	favorite := ""
	if entry.Favorite {
		favorite = "*"
	}

	pdf.CellFormat(15, 7, fmt.Sprintf("#%d", entry.PokemonID), "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 7, entry.Name, "1", 0, "L", false, 0, "")
	pdf.CellFormat(45, 7, nickname, "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, captured, "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 7, captureDate, "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 7, favorite, "1", 1, "C", false, 0, "")
}

func checkErr(pdf *fpdf.Fpdf) error {
	if pdf.Err() {
		return fmt.Errorf("rendering pdf: %w", pdf.Error())
	}
	return nil
}

func output(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}
