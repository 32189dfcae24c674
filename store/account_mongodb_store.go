package store

import (
	"context"

	"booking_service/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	DATABASE            = "booking"
	ACCOUNTS_COLLECTION = "accounts"
)

type AccountMongoDBStore struct {
	accounts *mongo.Collection
}

func NewAccountMongoDBStore(client *mongo.Client) domain.AccountStore {
	accounts := client.Database(DATABASE).Collection(ACCOUNTS_COLLECTION)
	return &AccountMongoDBStore{
		accounts: accounts,
	}
}

func (store *AccountMongoDBStore) Insert(ctx context.Context, account *domain.Account) error {
	_, err := store.accounts.InsertOne(ctx, account)
	return err
}

func (store *AccountMongoDBStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return store.filterOne(ctx, bson.M{"email": email})
}

func (store *AccountMongoDBStore) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return store.filterOne(ctx, bson.M{"_id": id})
}

func (store *AccountMongoDBStore) filterOne(ctx context.Context, filter interface{}) (*domain.Account, error) {
	result := store.accounts.FindOne(ctx, filter)

	var account domain.Account
	if err := result.Decode(&account); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &account, nil
}
