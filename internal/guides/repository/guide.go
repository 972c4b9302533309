package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	guideserrors "sandgrund/internal/guides/errors"
	"sandgrund/pkg/config"
	mongotx "sandgrund/pkg/db/mongo"
	"sandgrund/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "guides"
)

type GuideRepository interface {
	Create(ctx context.Context, guide *model.Guide) error
	FindAll(ctx context.Context) ([]model.Guide, error)
	FindByID(ctx context.Context, id string) (*model.Guide, error)
	Update(ctx context.Context, id string, update *model.GuideUpdate, actor string) (*model.Guide, error)
	SetActive(ctx context.Context, id string, active bool, actor string) error
	SetPhoto(ctx context.Context, id string, photo string) (*model.Guide, error)
}

type mongoGuideRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoGuideRepository(cfg *config.Config) GuideRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoGuideRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %s", guideserrors.ErrInvalidID, id)
	}
	return oid, nil
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func (r *mongoGuideRepository) Create(ctx context.Context, guide *model.Guide) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	guide.CreatedAt = now()
	result, err := r.collection.InsertOne(ctx, guide)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", guideserrors.ErrDuplicateEmail, guide.Email)
		}
		return fmt.Errorf("failed to create guide: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		guide.ID = oid.Hex()
	}
	return nil
}

func (r *mongoGuideRepository) FindAll(ctx context.Context) ([]model.Guide, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "fullName", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find guides: %w", err)
	}
	defer cursor.Close(ctx)

	guides := []model.Guide{}
	if err := cursor.All(ctx, &guides); err != nil {
		return nil, fmt.Errorf("failed to decode guides: %w", err)
	}
	return guides, nil
}

func (r *mongoGuideRepository) FindByID(ctx context.Context, id string) (*model.Guide, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var guide model.Guide
	if err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&guide); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, guideserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find guide: %w", err)
	}
	return &guide, nil
}

// Update sets the non-nil fields of update plus the audit fields and returns
// the stored result.
func (r *mongoGuideRepository) Update(ctx context.Context, id string, update *model.GuideUpdate, actor string) (*model.Guide, error) {
	set := bson.M{
		"updatedAt": now(),
		"updatedBy": actor,
	}
	if update.FullName != nil {
		set["fullName"] = *update.FullName
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Photo != nil {
		set["photo"] = *update.Photo
	}
	if update.Active != nil {
		set["active"] = *update.Active
	}
	return r.findOneAndSet(ctx, id, set)
}

func (r *mongoGuideRepository) SetActive(ctx context.Context, id string, active bool, actor string) error {
	_, err := r.findOneAndSet(ctx, id, bson.M{
		"active":    active,
		"updatedAt": now(),
		"updatedBy": actor,
	})
	return err
}

func (r *mongoGuideRepository) SetPhoto(ctx context.Context, id string, photo string) (*model.Guide, error) {
	return r.findOneAndSet(ctx, id, bson.M{"photo": photo})
}

func (r *mongoGuideRepository) findOneAndSet(ctx context.Context, id string, set bson.M) (*model.Guide, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var guide model.Guide
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&guide)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, guideserrors.ErrNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, guideserrors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update guide: %w", err)
	}
	return &guide, nil
}
