package store

import (
	"context"

	"booking_service/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const RESERVATIONS_COLLECTION = "reservations"

type ReservationMongoDBStore struct {
	reservations *mongo.Collection
}

func NewReservationMongoDBStore(client *mongo.Client) domain.ReservationStore {
	reservations := client.Database(DATABASE).Collection(RESERVATIONS_COLLECTION)
	return &ReservationMongoDBStore{
		reservations: reservations,
	}
}

func (store *ReservationMongoDBStore) GetAllByOwner(ctx context.Context, ownerID string) ([]*domain.Reservation, error) {
	cursor, err := store.reservations.Find(ctx, bson.M{"ownerId": ownerID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	reservations := []*domain.Reservation{}
	for cursor.Next(ctx) {
		var reservation domain.Reservation
		if err := cursor.Decode(&reservation); err != nil {
			return nil, err
		}
		reservations = append(reservations, &reservation)
	}
	return reservations, cursor.Err()
}

func (store *ReservationMongoDBStore) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Reservation, error) {
	result := store.reservations.FindOne(ctx, bson.M{"_id": id, "ownerId": ownerID})

	var reservation domain.Reservation
	if err := result.Decode(&reservation); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &reservation, nil
}

func (store *ReservationMongoDBStore) Insert(ctx context.Context, reservation *domain.Reservation) error {
	_, err := store.reservations.InsertOne(ctx, reservation)
	return err
}

func (store *ReservationMongoDBStore) Update(ctx context.Context, reservation *domain.Reservation) error {
	filter := bson.M{"_id": reservation.ID, "ownerId": reservation.OwnerID}
	_, err := store.reservations.ReplaceOne(ctx, filter, reservation)
	return err
}

func (store *ReservationMongoDBStore) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) (int64, error) {
	result, err := store.reservations.DeleteOne(ctx, bson.M{"_id": id, "ownerId": ownerID})
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
