package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/phpdave11/gofpdf"

	"voyage/internal/modules/itinerary"
)

// Page geometry in millimetres: A4 width with a 295mm overflow height.
const (
	pageWidth  = 210.0
	pageHeight = 295.0
	margin     = 15.0
	lineHeight = 6.0
)

// WritePDF lays out the itinerary as text on fixed-size pages and writes the
// document to w. It returns the number of pages produced.
func WritePDF(w io.Writer, it *itinerary.Itinerary) (int, error) {
	if it == nil {
		return 0, ErrNoItinerary
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: pageWidth, Ht: pageHeight},
	})
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(it.TripName, true)
	pdf.SetCreator("Voyage AI", false)

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	textWidth := pageWidth - 2*margin

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.MultiCell(textWidth, 10, tr(it.TripName), "", "L", false)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(90, 90, 90)
	pdf.MultiCell(textWidth, lineHeight, tr(fmt.Sprintf("%s to %s, %s to %s",
		it.Origin, it.Destination, it.StartDate, it.EndDate)), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	for _, day := range it.Days {
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetFillColor(230, 232, 245)
		pdf.MultiCell(textWidth, 8, tr(day.Day), "", "L", true)

		pdf.SetFont("Helvetica", "I", 11)
		pdf.MultiCell(textWidth, lineHeight, tr(day.Summary), "", "L", false)

		pdf.SetFont("Helvetica", "", 11)
		if len(day.Flights) > 0 {
			pdf.MultiCell(textWidth, lineHeight, tr("Flights: "+strings.Join(day.Flights, "; ")), "", "L", false)
		}
		if len(day.Hotels) > 0 {
			pdf.MultiCell(textWidth, lineHeight, tr("Hotels: "+strings.Join(day.Hotels, "; ")), "", "L", false)
		}
		for _, a := range day.Activities {
			pdf.MultiCell(textWidth, lineHeight, tr(fmt.Sprintf("%s: %s", a.Time, a.Description)), "", "L", false)
		}
		pdf.Ln(4)
	}

	pages := pdf.PageNo()
	if err := pdf.Output(w); err != nil {
		return 0, fmt.Errorf("pdf export: %w", err)
	}
	return pages, nil
}
