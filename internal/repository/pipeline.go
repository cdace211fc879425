package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type facetResult[T any] struct {
	Docs  []T `bson:"docs"`
	Total []struct {
		N int64 `bson:"n"`
	} `bson:"total"`
}

// pagedPipeline appends a $facet stage that returns one page of documents
// (shaped by docStages) together with the total match count.
func pagedPipeline(prefix mongo.Pipeline, page, limit int, docStages ...bson.D) mongo.Pipeline {
	docs := mongo.Pipeline{
		{{Key: "$skip", Value: skipFor(page, limit)}},
		{{Key: "$limit", Value: int64(limit)}},
	}
	docs = append(docs, docStages...)

	out := make(mongo.Pipeline, 0, len(prefix)+1)
	out = append(out, prefix...)
	return append(out, bson.D{{Key: "$facet", Value: bson.D{
		{Key: "docs", Value: docs},
		{Key: "total", Value: mongo.Pipeline{{{Key: "$count", Value: "n"}}}},
	}}})
}

// aggregatePage runs a pagedPipeline and decodes its single facet document.
func aggregatePage[T any](ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline) ([]T, int64, error) {
	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to aggregate %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	var res facetResult[T]
	if cursor.Next(ctx) {
		if err := cursor.Decode(&res); err != nil {
			return nil, 0, fmt.Errorf("failed to decode %s page: %w", coll.Name(), err)
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}

	var total int64
	if len(res.Total) > 0 {
		total = res.Total[0].N
	}
	if res.Docs == nil {
		res.Docs = []T{}
	}
	return res.Docs, total, nil
}

// lookupPublicUser joins a users document on localField and replaces it with
// the public profile fields. preserve keeps documents whose user is gone.
func lookupPublicUser(localField, as string, preserve bool) []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: localField},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: as},
			{Key: "pipeline", Value: mongo.Pipeline{
				{{Key: "$project", Value: bson.D{
					{Key: "username", Value: 1},
					{Key: "full_name", Value: 1},
					{Key: "avatar", Value: 1},
				}}},
			}},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + as},
			{Key: "preserveNullAndEmptyArrays", Value: preserve},
		}}},
	}
}
