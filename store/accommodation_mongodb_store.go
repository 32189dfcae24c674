package store

import (
	"context"

	"booking_service/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const ACCOMMODATIONS_COLLECTION = "accommodations"

type AccommodationMongoDBStore struct {
	accommodations *mongo.Collection
}

func NewAccommodationMongoDBStore(client *mongo.Client) domain.AccommodationStore {
	accommodations := client.Database(DATABASE).Collection(ACCOMMODATIONS_COLLECTION)
	return &AccommodationMongoDBStore{
		accommodations: accommodations,
	}
}

func (store *AccommodationMongoDBStore) GetAll(ctx context.Context) ([]*domain.Accommodation, error) {
	cursor, err := store.accommodations.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	accommodations := []*domain.Accommodation{}
	for cursor.Next(ctx) {
		var accommodation domain.Accommodation
		if err := cursor.Decode(&accommodation); err != nil {
			return nil, err
		}
		accommodations = append(accommodations, &accommodation)
	}
	return accommodations, cursor.Err()
}

func (store *AccommodationMongoDBStore) GetByID(ctx context.Context, id string) (*domain.Accommodation, error) {
	result := store.accommodations.FindOne(ctx, bson.M{"_id": id})

	var accommodation domain.Accommodation
	if err := result.Decode(&accommodation); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &accommodation, nil
}

func (store *AccommodationMongoDBStore) Insert(ctx context.Context, accommodation *domain.Accommodation) error {
	_, err := store.accommodations.InsertOne(ctx, accommodation)
	return err
}

func (store *AccommodationMongoDBStore) Update(ctx context.Context, accommodation *domain.Accommodation) error {
	filter := bson.M{"_id": accommodation.ID}
	_, err := store.accommodations.ReplaceOne(ctx, filter, accommodation)
	return err
}

func (store *AccommodationMongoDBStore) Delete(ctx context.Context, id string) error {
	_, err := store.accommodations.DeleteOne(ctx, bson.M{"_id": id})
	return err
}
