package service

import (
	"context"
	"fmt"
	"io"
	"sort"

	apperrors "sandgrund/pkg/errors"
	"sandgrund/pkg/model"

	"github.com/phpdave11/gofpdf"
)

const dateLayout = "2006-01-02 15:04"

var overviewColumns = []struct {
	title string
	width float64
	value func(b *model.Booking) string
}{
	{"Start", 32, func(b *model.Booking) string { return b.Start.UTC().Format(dateLayout) }},
	{"Title", 60, func(b *model.Booking) string { return b.Title }},
	{"Status", 24, func(b *model.Booking) string { return b.Status }},
	{"Guide", 40, func(b *model.Booking) string { return b.Guide }},
	{"Contact", 50, func(b *model.Booking) string { return b.ContactPerson }},
	{"Phone", 34, func(b *model.Booking) string { return b.ContactPhone }},
	{"Pax", 14, func(b *model.Booking) string { return fmt.Sprint(b.Participants) }},
	{"Snacks", 16, func(b *model.Booking) string { return yesNo(b.Snacks) }},
}

// Overview renders the bookings of year as a landscape A4 table, ordered by start.
func (s *tourService) Overview(ctx context.Context, year int, w io.Writer) error {
	bookings, err := s.BookingsByYear(ctx, year)
	if err != nil {
		return err
	}

	sorted := make([]model.Booking, len(bookings))
	copy(sorted, bookings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(fmt.Sprintf("Tours %d", year), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Tours %d", year))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	for _, col := range overviewColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i := range sorted {
		for _, col := range overviewColumns {
			pdf.CellFormat(col.width, 7, tr(col.value(&sorted[i])), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 6, fmt.Sprintf("%d booking(s), %d participant(s)", len(sorted), totalParticipants(sorted)))

	if err := pdf.Output(w); err != nil {
		s.cfg.Log.Error("Failed to render tour overview", "year", year, "error", err)
		return apperrors.Internal("Failed to generate overview", err)
	}
	return nil
}

func totalParticipants(bookings []model.Booking) int {
	total := 0
	for i := range bookings {
		total += bookings[i].Participants
	}
	return total
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
