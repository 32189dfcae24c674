package domain

import "context"

// AccountStore holds registered accounts. Accounts are immutable after
// registration, there is no update or delete.
type AccountStore interface {
	Insert(ctx context.Context, account *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
}

type AccommodationStore interface {
	GetAll(ctx context.Context) ([]*Accommodation, error)
	GetByID(ctx context.Context, id string) (*Accommodation, error)
	Insert(ctx context.Context, accommodation *Accommodation) error
	Update(ctx context.Context, accommodation *Accommodation) error
	Delete(ctx context.Context, id string) error
}

// ReservationStore scopes every read and write to an owner, a reservation is
// never visible outside the account that created it.
type ReservationStore interface {
	GetAllByOwner(ctx context.Context, ownerID string) ([]*Reservation, error)
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*Reservation, error)
	Insert(ctx context.Context, reservation *Reservation) error
	Update(ctx context.Context, reservation *Reservation) error
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (int64, error)
}
