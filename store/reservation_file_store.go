package store

import (
	"context"

	"booking_service/domain"
)

type ReservationFileStore struct {
	db *FileDatabase
}

func NewReservationFileStore(db *FileDatabase) domain.ReservationStore {
	return &ReservationFileStore{db: db}
}

func (store *ReservationFileStore) GetAllByOwner(ctx context.Context, ownerID string) ([]*domain.Reservation, error) {
	reservations := []*domain.Reservation{}
	err := store.db.view(func(doc *document) error {
		for _, reservation := range doc.Reservations {
			if reservation.OwnerID == ownerID {
				reservations = append(reservations, reservation)
			}
		}
		return nil
	})
	return reservations, err
}

func (store *ReservationFileStore) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Reservation, error) {
	var found *domain.Reservation
	err := store.db.view(func(doc *document) error {
		for _, reservation := range doc.Reservations {
			if reservation.ID == id && reservation.OwnerID == ownerID {
				found = reservation
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (store *ReservationFileStore) Insert(ctx context.Context, reservation *domain.Reservation) error {
	return store.db.update(func(doc *document) error {
		doc.Reservations = append(doc.Reservations, reservation)
		return nil
	})
}

func (store *ReservationFileStore) Update(ctx context.Context, reservation *domain.Reservation) error {
	return store.db.update(func(doc *document) error {
		for i, existing := range doc.Reservations {
			if existing.ID == reservation.ID && existing.OwnerID == reservation.OwnerID {
				doc.Reservations[i] = reservation
				return nil
			}
		}
		return nil
	})
}

// DeleteByIDAndOwner reports how many rows were removed, deleting zero rows is
// a not-found for the caller, not a success.
func (store *ReservationFileStore) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (int64, error) {
	var deleted int64
	err := store.db.update(func(doc *document) error {
		kept := doc.Reservations[:0]
		for _, reservation := range doc.Reservations {
			if reservation.ID == id && reservation.OwnerID == ownerID {
				deleted++
				continue
			}
			kept = append(kept, reservation)
		}
		doc.Reservations = kept
		return nil
	})
	return deleted, err
}
