package store

import (
	"context"

	"booking_service/domain"
)

type AccountFileStore struct {
	db *FileDatabase
}

func NewAccountFileStore(db *FileDatabase) domain.AccountStore {
	return &AccountFileStore{db: db}
}

func (store *AccountFileStore) Insert(ctx context.Context, account *domain.Account) error {
	return store.db.update(func(doc *document) error {
		doc.Accounts = append(doc.Accounts, account)
		return nil
	})
}

func (store *AccountFileStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var found *domain.Account
	err := store.db.view(func(doc *document) error {
		for _, account := range doc.Accounts {
			if account.Email == email {
				found = account
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (store *AccountFileStore) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var found *domain.Account
	err := store.db.view(func(doc *document) error {
		for _, account := range doc.Accounts {
			if account.ID == id {
				found = account
				return nil
			}
		}
		return nil
	})
	return found, err
}
