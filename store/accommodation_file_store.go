package store

import (
	"context"

	"booking_service/domain"
)

type AccommodationFileStore struct {
	db *FileDatabase
}

func NewAccommodationFileStore(db *FileDatabase) domain.AccommodationStore {
	return &AccommodationFileStore{db: db}
}

func (store *AccommodationFileStore) GetAll(ctx context.Context) ([]*domain.Accommodation, error) {
	accommodations := []*domain.Accommodation{}
	err := store.db.view(func(doc *document) error {
		accommodations = append(accommodations, doc.Accommodations...)
		return nil
	})
	return accommodations, err
}

func (store *AccommodationFileStore) GetByID(ctx context.Context, id string) (*domain.Accommodation, error) {
	var found *domain.Accommodation
	err := store.db.view(func(doc *document) error {
		for _, accommodation := range doc.Accommodations {
			if accommodation.ID == id {
				found = accommodation
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (store *AccommodationFileStore) Insert(ctx context.Context, accommodation *domain.Accommodation) error {
	return store.db.update(func(doc *document) error {
		doc.Accommodations = append(doc.Accommodations, accommodation)
		return nil
	})
}

func (store *AccommodationFileStore) Update(ctx context.Context, accommodation *domain.Accommodation) error {
	return store.db.update(func(doc *document) error {
		for i, existing := range doc.Accommodations {
			if existing.ID == accommodation.ID {
				doc.Accommodations[i] = accommodation
				return nil
			}
		}
		return nil
	})
}

// Delete removes the record when present and succeeds either way, matching the
// unconditional delete on this collection.
func (store *AccommodationFileStore) Delete(ctx context.Context, id string) error {
	return store.db.update(func(doc *document) error {
		kept := doc.Accommodations[:0]
		for _, accommodation := range doc.Accommodations {
			if accommodation.ID != id {
				kept = append(kept, accommodation)
			}
		}
		doc.Accommodations = kept
		return nil
	})
}
