package application

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"booking_service/domain"
	"booking_service/errors"

	"github.com/jung-kurt/gofpdf"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var monate = []string{"Januar", "Februar", "März", "April", "Mai", "Juni",
	"Juli", "August", "September", "Oktober", "November", "Dezember"}

// ReportService renders the caller's reservations as a PDF table and sums up
// revenue. Both only ever see records owned by the caller.
type ReportService struct {
	store  domain.ReservationStore
	tracer trace.Tracer
}

func NewReportService(store domain.ReservationStore, tracer trace.Tracer) *ReportService {
	return &ReportService{
		store:  store,
		tracer: tracer,
	}
}

// Report filters by the year of the start date, optionally by month (0-11)
// and accommodation label ("alle" or empty matches everything). No matching
// rows means there is nothing to export.
func (service *ReportService) Report(ctx context.Context, identity *domain.Claims, year int, month int, unterkunft string) ([]byte, error) {
	ctx, span := service.tracer.Start(ctx, "ReportService.Report")
	defer span.End()

	reservations, err := service.store.GetAllByOwner(ctx, identity.UserID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	rows := []*domain.Reservation{}
	for _, reservation := range reservations {
		start, err := time.Parse(dateLayout, reservation.Startdatum)
		if err != nil {
			continue
		}
		if start.Year() != year {
			continue
		}
		if month >= 0 && int(start.Month())-1 != month {
			continue
		}
		if unterkunft != "" && unterkunft != "alle" && reservation.Unterkunft != unterkunft {
			continue
		}
		rows = append(rows, reservation)
	}

	if len(rows) == 0 {
		return nil, errors.ErrNoReportData
	}

	title := fmt.Sprintf("Reservierungen %d", year)
	if month >= 0 {
		title = fmt.Sprintf("Reservierungen %s %d", monate[month], year)
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	headers := []string{"#", "Kunde", "Ausweis", "Telefon", "Unterkunft", "Standort", "Zeitraum", "Dauer", "Preis"}
	widths := []float64{8, 45, 28, 28, 38, 38, 48, 20, 24}

	pdf.SetFont("Arial", "B", 10)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, tr(header), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for i, reservation := range rows {
		cells := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%s %s", reservation.Vorname, reservation.Nachname),
			reservation.Ausweisnummer,
			reservation.Telefon,
			reservation.Unterkunft,
			reservation.Standort,
			fmt.Sprintf("%s - %s", reservation.Startdatum, reservation.Enddatum),
			reservation.Dauer,
			fmt.Sprintf("%.2f EUR", reservation.Preis),
		}
		for j, value := range cells {
			pdf.CellFormat(widths[j], 7, tr(value), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return buf.Bytes(), nil
}

// Summary sums the price of reservations starting in the current month and
// in the current year.
func (service *ReportService) Summary(ctx context.Context, identity *domain.Claims) (*domain.RevenueSummary, error) {
	ctx, span := service.tracer.Start(ctx, "ReportService.Summary")
	defer span.End()

	reservations, err := service.store.GetAllByOwner(ctx, identity.UserID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	now := time.Now()
	summary := &domain.RevenueSummary{}
	for _, reservation := range reservations {
		start, err := time.Parse(dateLayout, reservation.Startdatum)
		if err != nil {
			continue
		}
		if start.Year() != now.Year() {
			continue
		}
		summary.GesamtJahr += reservation.Preis
		if start.Month() == now.Month() {
			summary.GesamtMonat += reservation.Preis
		}
	}

	return summary, nil
}
