package coverages

import (
	"context"
	"time"

	"roster-service/internal/app/contracts"
	"roster-service/internal/app/models"
	"roster-service/internal/pkg/constvars"
	"roster-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CoverageMongoRepository struct {
	Collection *mongo.Collection
}

func NewCoverageMongoRepository(db *mongo.Client, dbName string) contracts.CoverageRepository {
	return &CoverageMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionShiftCoverages),
	}
}

func (repo *CoverageMongoRepository) FindAll(ctx context.Context) ([]models.ShiftCoverage, error) {
	var shiftCoverages []models.ShiftCoverage
	findOptions := options.Find().SetSort(bson.D{{Key: "code", Value: 1}})
	cursor, err := repo.Collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	err = cursor.All(ctx, &shiftCoverages)
	if err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return shiftCoverages, nil
}

func (repo *CoverageMongoRepository) FindByCode(ctx context.Context, code string) (*models.ShiftCoverage, error) {
	var shiftCoverage models.ShiftCoverage
	err := repo.Collection.FindOne(ctx, bson.M{"code": code}).Decode(&shiftCoverage)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &shiftCoverage, nil
}

func (repo *CoverageMongoRepository) Upsert(ctx context.Context, shiftCoverage *models.ShiftCoverage) error {
	if shiftCoverage.UpdatedAt.IsZero() {
		shiftCoverage.UpdatedAt = time.Now().UTC()
	}
	update := bson.M{
		"$set": bson.M{
			"hours":     shiftCoverage.Hours,
			"updatedAt": shiftCoverage.UpdatedAt,
		},
	}
	_, err := repo.Collection.UpdateOne(ctx, bson.M{"code": shiftCoverage.Code}, update, options.Update().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
