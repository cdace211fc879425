package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// saveVersioned persists a per-user list document with compare-and-swap
// semantics. version is the version the caller loaded; 0 means the document
// did not exist yet and is inserted (the unique owner index rejects a racing
// insert). Returns the inserted id for new documents and ErrVersionConflict
// when another writer saved first.
func saveVersioned(ctx context.Context, coll *mongo.Collection, owner bson.M, version int64, insertDoc interface{}, set bson.M) (primitive.ObjectID, error) {
	if version == 0 {
		res, err := coll.InsertOne(ctx, insertDoc)
		if err != nil {
			if translate(err) == ErrDuplicate {
				return primitive.NilObjectID, ErrVersionConflict
			}
			return primitive.NilObjectID, fmt.Errorf("failed to insert %s document: %w", coll.Name(), err)
		}
		id, _ := res.InsertedID.(primitive.ObjectID)
		return id, nil
	}

	filter := bson.M{"version": version}
	for k, v := range owner {
		filter[k] = v
	}
	set["version"] = version + 1

	res, err := coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to update %s document: %w", coll.Name(), err)
	}
	if res.MatchedCount == 0 {
		return primitive.NilObjectID, ErrVersionConflict
	}
	return primitive.NilObjectID, nil
}
