package application

import (
	"context"
	stderrors "errors"
	"io"
	"strconv"

	"booking_service/domain"
	"booking_service/errors"

	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ImportService turns spreadsheet rows into reservations, one create per row.
type ImportService struct {
	reservations *ReservationService
	tracer       trace.Tracer
}

func NewImportService(reservations *ReservationService, tracer trace.Tracer) *ImportService {
	return &ImportService{
		reservations: reservations,
		tracer:       tracer,
	}
}

// ImportXLSX reads the first sheet of a workbook. The header row names the
// columns, every following row becomes one reservation for the caller. Rows
// that fail validation are skipped, rows already imported stay imported.
func (service *ImportService) ImportXLSX(ctx context.Context, identity *domain.Claims, reader io.Reader) (*domain.ImportResult, error) {
	ctx, span := service.tracer.Start(ctx, "ImportService.ImportXLSX")
	defer span.End()

	workbook, err := excelize.OpenReader(reader)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.NewValidationError("Excel konnte nicht gelesen werden")
	}
	defer workbook.Close()

	rows, err := workbook.GetRows(workbook.GetSheetName(0))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.NewValidationError("Excel konnte nicht gelesen werden")
	}

	result := &domain.ImportResult{}
	if len(rows) < 2 {
		return result, nil
	}

	columns := map[string]int{}
	for i, header := range rows[0] {
		columns[header] = i
	}

	cell := func(row []string, header string) string {
		idx, ok := columns[header]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	for _, row := range rows[1:] {
		preis, _ := strconv.ParseFloat(cell(row, "Preis"), 64)

		reservation := &domain.Reservation{
			Vorname:       cell(row, "Vorname"),
			Nachname:      cell(row, "Nachname"),
			Ausweisnummer: cell(row, "Ausweisnummer"),
			Telefon:       cell(row, "Telefonnummer"),
			Startdatum:    cell(row, "Startdatum"),
			Enddatum:      cell(row, "Enddatum"),
			Preis:         preis,
			Unterkunft:    cell(row, "Unterkunft"),
			Standort:      cell(row, "Standort"),
			FotoAusweis:   "Kein Foto",
			FotoPass:      "Kein Foto",
		}

		if _, err := service.reservations.Create(ctx, identity, reservation); err != nil {
			var validationErr *errors.ValidationError
			if stderrors.As(err, &validationErr) {
				result.Skipped++
				continue
			}
			span.SetStatus(codes.Error, err.Error())
			return result, err
		}
		result.Imported++
	}

	return result, nil
}
