package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	tourserrors "sandgrund/internal/tours/errors"
	"sandgrund/pkg/config"
	mongotx "sandgrund/pkg/db/mongo"
	"sandgrund/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "tours"
)

// TourRepository stores bookings embedded in one document per calendar year.
type TourRepository interface {
	FindYear(ctx context.Context, year int) (*model.YearDocument, error)
	FindAll(ctx context.Context) ([]model.YearDocument, error)
	AddBooking(ctx context.Context, booking *model.Booking) error
	FindBooking(ctx context.Context, id string) (*model.Booking, error)
	ReplaceBooking(ctx context.Context, booking *model.Booking) error
	MoveBooking(ctx context.Context, booking *model.Booking) error
	RemoveBooking(ctx context.Context, id string) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

type mongoTourRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

func NewMongoTourRepository(cfg *config.Config) TourRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoTourRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

func validateID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", tourserrors.ErrInvalidID, id)
	}
	return nil
}

func (r *mongoTourRepository) FindYear(ctx context.Context, year int) (*model.YearDocument, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var doc model.YearDocument
	err := r.collection.FindOne(ctx, bson.M{"year": year}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %d", tourserrors.ErrYearNotFound, year)
		}
		return nil, fmt.Errorf("failed to find tour document: %w", err)
	}
	return &doc, nil
}

func (r *mongoTourRepository) FindAll(ctx context.Context) ([]model.YearDocument, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "year", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find tour documents: %w", err)
	}
	defer cursor.Close(ctx)

	docs := []model.YearDocument{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode tour documents: %w", err)
	}
	return docs, nil
}

// AddBooking pushes the booking into the document of its start year,
// creating that document on first use.
func (r *mongoTourRepository) AddBooking(ctx context.Context, booking *model.Booking) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.Year = booking.PartitionYear()
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"year": booking.Year},
		bson.M{"$push": bson.M{"bookings": booking}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to add booking: %w", err)
	}
	return nil
}

func (r *mongoTourRepository) FindBooking(ctx context.Context, id string) (*model.Booking, error) {
	if err := validateID(id); err != nil {
		return nil, err
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"year": 1, "bookings.$": 1})
	var doc model.YearDocument
	err := r.collection.FindOne(ctx, bson.M{"bookings._id": id}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, tourserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	if len(doc.Bookings) == 0 {
		return nil, tourserrors.ErrNotFound
	}

	booking := doc.Bookings[0]
	booking.Year = doc.Year
	return &booking, nil
}

// ReplaceBooking overwrites a booking in place. The booking must stay in the
// same year; use MoveBooking otherwise.
func (r *mongoTourRepository) ReplaceBooking(ctx context.Context, booking *model.Booking) error {
	if err := validateID(booking.ID); err != nil {
		return err
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	booking.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"year": booking.Year, "bookings._id": booking.ID},
		bson.M{"$set": bson.M{"bookings.$": booking}},
	)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return tourserrors.ErrNotFound
	}
	return nil
}

// MoveBooking pulls the booking out of whatever year holds it and pushes the
// new version into its start year, atomically.
func (r *mongoTourRepository) MoveBooking(ctx context.Context, booking *model.Booking) error {
	if err := validateID(booking.ID); err != nil {
		return err
	}

	booking.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	return r.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := r.pull(sessCtx, booking.ID); err != nil {
			return err
		}
		return r.AddBooking(sessCtx, booking)
	})
}

func (r *mongoTourRepository) RemoveBooking(ctx context.Context, id string) error {
	if err := validateID(id); err != nil {
		return err
	}
	return r.pull(ctx, id)
}

func (r *mongoTourRepository) pull(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx,
		bson.M{"bookings._id": id},
		bson.M{"$pull": bson.M{"bookings": bson.M{"_id": id}}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove booking: %w", err)
	}
	if result.MatchedCount == 0 {
		return tourserrors.ErrNotFound
	}
	return nil
}

func (r *mongoTourRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
