package mongo

import (
	"context"
	"time"

	"kyc.igtapps.io/infrastructure/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (repo *MongoRepository[T]) CreateOne(ctx context.Context, payload T) (*T, error) {
	c, cancel := repo.requestContext(ctx)
	defer cancel()

	parsed := payload.ParseModel().(*T)
	_, err := repo.Model.InsertOne(c, parsed)
	if err != nil {
		logger.Error("mongo error occured while running CreateOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return parsed, nil
}

func (repo *MongoRepository[T]) FindOneByFilter(filter map[string]interface{}, opts ...FindOptions) (*T, error) {
	c, cancel := repo.requestContext(context.Background())
	defer cancel()

	findOpts := options.FindOne()
	if len(opts) != 0 {
		if opts[0].Projection != nil {
			findOpts.SetProjection(*opts[0].Projection)
		}
		if opts[0].Sort != nil {
			findOpts.SetSort(*opts[0].Sort)
		}
	}

	var result T
	err := repo.Model.FindOne(c, normaliseFilter(filter), findOpts).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindOneByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) FindByID(id string, opts ...FindOptions) (*T, error) {
	return repo.FindOneByFilter(map[string]interface{}{"_id": id}, opts...)
}

func (repo *MongoRepository[T]) FindMany(filter map[string]interface{}, opts ...FindOptions) (*[]T, error) {
	c, cancel := repo.requestContext(context.Background())
	defer cancel()

	findOpts := options.Find()
	if len(opts) != 0 {
		if opts[0].Sort != nil {
			findOpts.SetSort(*opts[0].Sort)
		}
		if opts[0].Skip != nil {
			findOpts.SetSkip(*opts[0].Skip)
		}
	}

	cursor, err := repo.Model.Find(c, normaliseFilter(filter), findOpts)
	if err != nil {
		logger.Error("mongo error occured while running FindMany", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	results := []T{}
	if err := cursor.All(c, &results); err != nil {
		return nil, err
	}
	return &results, nil
}

// UpdatePartialByFilter sets the provided fields on the first document
// matching the filter.
func (repo *MongoRepository[T]) UpdatePartialByFilter(ctx context.Context, filter map[string]interface{}, update map[string]interface{}) (bool, error) {
	c, cancel := repo.requestContext(ctx)
	defer cancel()

	update["updatedAt"] = time.Now()
	result, err := repo.Model.UpdateOne(c, normaliseFilter(filter), bson.M{"$set": update})
	if err != nil {
		logger.Error("mongo error occured while running UpdatePartialByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// UpdateOrCreateByFilter upserts a latest-wins record: signal collections keep
// exactly one row per user and a new upload overwrites the old one.
func (repo *MongoRepository[T]) UpdateOrCreateByFilter(ctx context.Context, filter map[string]interface{}, payload T) (bool, error) {
	c, cancel := repo.requestContext(ctx)
	defer cancel()

	raw, err := bson.Marshal(payload.ParseModel())
	if err != nil {
		return false, err
	}
	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		return false, err
	}
	// _id is immutable on an existing record; only a fresh insert gets one
	id := fields["_id"]
	delete(fields, "_id")
	delete(fields, "createdAt")
	update := bson.M{
		"$set":         fields,
		"$setOnInsert": bson.M{"_id": id, "createdAt": time.Now()},
	}
	_, err = repo.Model.UpdateOne(c, normaliseFilter(filter), update, options.Update().SetUpsert(true))
	if err != nil {
		logger.Error("mongo error occured while running UpdateOrCreateByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return false, err
	}
	return true, nil
}

func (repo *MongoRepository[T]) DeleteOne(ctx context.Context, filter map[string]interface{}) (int64, error) {
	c, cancel := repo.requestContext(ctx)
	defer cancel()

	result, err := repo.Model.DeleteOne(c, normaliseFilter(filter))
	if err != nil {
		logger.Error("mongo error occured while running DeleteOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return 0, err
	}
	return result.DeletedCount, nil
}

func (repo *MongoRepository[T]) CountDocs(filter map[string]interface{}) (int64, error) {
	c, cancel := repo.requestContext(context.Background())
	defer cancel()

	count, err := repo.Model.CountDocuments(c, normaliseFilter(filter))
	if err != nil {
		logger.Error("mongo error occured while running CountDocs", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return 0, err
	}
	return count, nil
}

func (repo *MongoRepository[T]) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, 15*time.Second)
}

func normaliseFilter(filter map[string]interface{}) bson.M {
	m := bson.M{}
	for k, v := range filter {
		m[k] = v
	}
	return m
}
