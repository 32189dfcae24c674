package application

import (
	"context"

	"booking_service/domain"
	"booking_service/errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// AccommodationService has no ownership scoping, every authenticated caller
// may change every record.
type AccommodationService struct {
	store  domain.AccommodationStore
	tracer trace.Tracer
}

func NewAccommodationService(store domain.AccommodationStore, tracer trace.Tracer) *AccommodationService {
	return &AccommodationService{
		store:  store,
		tracer: tracer,
	}
}

func (service *AccommodationService) GetAll(ctx context.Context) ([]*domain.Accommodation, error) {
	ctx, span := service.tracer.Start(ctx, "AccommodationService.GetAll")
	defer span.End()

	return service.store.GetAll(ctx)
}

func (service *AccommodationService) Create(ctx context.Context, accommodation *domain.Accommodation) (*domain.Accommodation, error) {
	ctx, span := service.tracer.Start(ctx, "AccommodationService.Create")
	defer span.End()

	accommodation.ID = "a_" + uuid.NewString()

	if err := service.store.Insert(ctx, accommodation); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return accommodation, nil
}

func (service *AccommodationService) Update(ctx context.Context, id string, patch *domain.AccommodationPatch) (*domain.Accommodation, error) {
	ctx, span := service.tracer.Start(ctx, "AccommodationService.Update")
	defer span.End()

	existing, err := service.store.GetByID(ctx, id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if existing == nil {
		return nil, errors.ErrNotFound
	}

	if patch.Name != nil {
		existing.Name = *patch.Name
	}
	if patch.Beschreibung != nil {
		existing.Beschreibung = *patch.Beschreibung
	}
	if patch.Standort != nil {
		existing.Standort = *patch.Standort
	}

	if err := service.store.Update(ctx, existing); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return existing, nil
}

// Delete succeeds whether or not the record existed.
func (service *AccommodationService) Delete(ctx context.Context, id string) error {
	ctx, span := service.tracer.Start(ctx, "AccommodationService.Delete")
	defer span.End()

	return service.store.Delete(ctx, id)
}
