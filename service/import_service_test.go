package application

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	workbook := excelize.NewFile()
	sheet := workbook.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, workbook.SetSheetRow(sheet, cell, &row))
	}
	buf, err := workbook.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

var importHeader = []interface{}{
	"Vorname", "Nachname", "Ausweisnummer", "Telefonnummer",
	"Startdatum", "Enddatum", "Preis", "Unterkunft", "Standort",
}

func TestImportXLSX(t *testing.T) {
	_, _, reservations := newTestStores(t)
	reservationService := NewReservationService(reservations, noopTracer())
	service := NewImportService(reservationService, noopTracer())
	ctx := context.Background()
	alice := testIdentity("u_alice")

	buf := buildWorkbook(t, [][]interface{}{
		importHeader,
		{"Max", "Muster", "L01X", "0176", "2024-03-01", "2024-03-04", 250.5, "Cabin A", "Lot 1"},
		{"Erika", "Beispiel", "L02Y", "0177", "2024-04-10", "2024-04-12", 120, "Cabin B", "Lot 2"},
	})

	result, err := service.ImportXLSX(ctx, alice, buf)
	require.NoError(t, err)
	require.Equal(t, 2, result.Imported)
	require.Zero(t, result.Skipped)

	imported, err := reservationService.GetAllByOwner(ctx, alice)
	require.NoError(t, err)
	require.Len(t, imported, 2)
	for _, reservation := range imported {
		require.Equal(t, "u_alice", reservation.OwnerID)
		require.NotEmpty(t, reservation.Dauer)
	}
}

func TestImportXLSXSkipsInvalidRows(t *testing.T) {
	_, _, reservations := newTestStores(t)
	reservationService := NewReservationService(reservations, noopTracer())
	service := NewImportService(reservationService, noopTracer())
	ctx := context.Background()
	alice := testIdentity("u_alice")

	buf := buildWorkbook(t, [][]interface{}{
		importHeader,
		{"Max", "Muster", "L01X", "0176", "2024-03-01", "2024-03-04", 250.5, "Cabin A", "Lot 1"},
		// End before start, must be skipped without aborting the rest.
		{"Kaputt", "Zeile", "L03Z", "0178", "2024-05-10", "2024-05-01", 99, "Cabin C", "Lot 3"},
		{"Erika", "Beispiel", "L02Y", "0177", "2024-04-10", "2024-04-12", 120, "Cabin B", "Lot 2"},
	})

	result, err := service.ImportXLSX(ctx, alice, buf)
	require.NoError(t, err)
	require.Equal(t, 2, result.Imported)
	require.Equal(t, 1, result.Skipped)
}

func TestImportXLSXHeaderOnly(t *testing.T) {
	_, _, reservations := newTestStores(t)
	service := NewImportService(NewReservationService(reservations, noopTracer()), noopTracer())

	buf := buildWorkbook(t, [][]interface{}{importHeader})
	result, err := service.ImportXLSX(context.Background(), testIdentity("u_alice"), buf)
	require.NoError(t, err)
	require.Zero(t, result.Imported)
	require.Zero(t, result.Skipped)
}

func TestImportXLSXRejectsGarbage(t *testing.T) {
	_, _, reservations := newTestStores(t)
	service := NewImportService(NewReservationService(reservations, noopTracer()), noopTracer())

	_, err := service.ImportXLSX(context.Background(), testIdentity("u_alice"), strings.NewReader("not a workbook"))
	require.Error(t, err)
}
