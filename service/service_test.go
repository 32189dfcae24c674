package application

import (
	"path/filepath"
	"testing"

	"booking_service/domain"
	store2 "booking_service/store"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

var testKey = []byte("test-secret")

func noopTracer() trace.Tracer {
	return trace.NewNoopTracerProvider().Tracer("test")
}

func newTestStores(t *testing.T) (domain.AccountStore, domain.AccommodationStore, domain.ReservationStore) {
	t.Helper()
	db, err := store2.NewFileDatabase(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	return store2.NewAccountFileStore(db),
		store2.NewAccommodationFileStore(db),
		store2.NewReservationFileStore(db)
}

func testIdentity(id string) *domain.Claims {
	return &domain.Claims{UserID: id, Email: id + "@example.com"}
}
