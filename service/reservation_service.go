package application

import (
	"context"
	"fmt"
	"math"
	"time"

	"booking_service/domain"
	"booking_service/errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const dateLayout = "2006-01-02"

type ReservationService struct {
	store  domain.ReservationStore
	tracer trace.Tracer
}

func NewReservationService(store domain.ReservationStore, tracer trace.Tracer) *ReservationService {
	return &ReservationService{
		store:  store,
		tracer: tracer,
	}
}

// computeDauer applies the booking duration rule: ceil of the day difference,
// the end date has to lie strictly after the start date.
func computeDauer(startdatum, enddatum string) (string, error) {
	start, err := time.Parse(dateLayout, startdatum)
	if err != nil {
		return "", errors.NewValidationError("Invalid startdatum, expected YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, enddatum)
	if err != nil {
		return "", errors.NewValidationError("Invalid enddatum, expected YYYY-MM-DD")
	}

	tage := int(math.Ceil(end.Sub(start).Hours() / 24))
	if tage <= 0 {
		return "", errors.NewValidationError(errors.EndBeforeStartError)
	}

	return fmt.Sprintf("%d Tage", tage), nil
}

func (service *ReservationService) GetAllByOwner(ctx context.Context, identity *domain.Claims) ([]*domain.Reservation, error) {
	ctx, span := service.tracer.Start(ctx, "ReservationService.GetAllByOwner")
	defer span.End()

	return service.store.GetAllByOwner(ctx, identity.UserID)
}

// Create stamps the caller as owner. Whatever id or ownerId the payload
// carried is overwritten, never trusted.
func (service *ReservationService) Create(ctx context.Context, identity *domain.Claims, reservation *domain.Reservation) (*domain.Reservation, error) {
	ctx, span := service.tracer.Start(ctx, "ReservationService.Create")
	defer span.End()

	dauer, err := computeDauer(reservation.Startdatum, reservation.Enddatum)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	reservation.ID = "r_" + uuid.NewString()
	reservation.OwnerID = identity.UserID
	reservation.Dauer = dauer
	if reservation.FotoAusweis == "" {
		reservation.FotoAusweis = "Kein Foto"
	}
	if reservation.FotoPass == "" {
		reservation.FotoPass = "Kein Foto"
	}

	if err := service.store.Insert(ctx, reservation); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return reservation, nil
}

// Update merges the patch over the caller's own record. A reservation owned by
// someone else looks exactly like a missing one.
func (service *ReservationService) Update(ctx context.Context, identity *domain.Claims, id string, patch *domain.ReservationPatch) (*domain.Reservation, error) {
	ctx, span := service.tracer.Start(ctx, "ReservationService.Update")
	defer span.End()

	existing, err := service.store.GetByIDAndOwner(ctx, id, identity.UserID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if existing == nil {
		return nil, errors.ErrNotFound
	}

	datesChanged := false
	if patch.Vorname != nil {
		existing.Vorname = *patch.Vorname
	}
	if patch.Nachname != nil {
		existing.Nachname = *patch.Nachname
	}
	if patch.Ausweisnummer != nil {
		existing.Ausweisnummer = *patch.Ausweisnummer
	}
	if patch.Telefon != nil {
		existing.Telefon = *patch.Telefon
	}
	if patch.Startdatum != nil {
		existing.Startdatum = *patch.Startdatum
		datesChanged = true
	}
	if patch.Enddatum != nil {
		existing.Enddatum = *patch.Enddatum
		datesChanged = true
	}
	if patch.Preis != nil {
		existing.Preis = *patch.Preis
	}
	if patch.Unterkunft != nil {
		existing.Unterkunft = *patch.Unterkunft
	}
	if patch.Standort != nil {
		existing.Standort = *patch.Standort
	}
	if patch.FotoAusweis != nil {
		existing.FotoAusweis = *patch.FotoAusweis
	}
	if patch.FotoPass != nil {
		existing.FotoPass = *patch.FotoPass
	}

	if datesChanged {
		dauer, err := computeDauer(existing.Startdatum, existing.Enddatum)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
		existing.Dauer = dauer
	}

	// id and ownerId are not patchable fields, they keep their stored values.
	if err := service.store.Update(ctx, existing); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return existing, nil
}

// Delete verifies a row owned by the caller actually went away, deleting zero
// rows is a not-found.
func (service *ReservationService) Delete(ctx context.Context, identity *domain.Claims, id string) error {
	ctx, span := service.tracer.Start(ctx, "ReservationService.Delete")
	defer span.End()

	deleted, err := service.store.DeleteByIDAndOwner(ctx, id, identity.UserID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if deleted == 0 {
		return errors.ErrNotFound
	}
	return nil
}
