package repository

import (
	"context"
	"fmt"

	"github.com/Dias221467/streamify/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type entitySource struct {
	collection string
	titleField string
}

// entitySources is the dispatch table from entity kind to the collection
// and display field that resolve it.
var entitySources = map[models.EntityKind]entitySource{
	models.EntityVideo:    {collection: "videos", titleField: "title"},
	models.EntityComment:  {collection: "comments", titleField: "content"},
	models.EntityTweet:    {collection: "tweets", titleField: "content"},
	models.EntityUser:     {collection: "users", titleField: "username"},
	models.EntityPlaylist: {collection: "playlists", titleField: "name"},
}

const maxTitleLen = 80

// EntityRepository resolves polymorphic entity references for display.
type EntityRepository struct {
	db *mongo.Database
}

func NewEntityRepository(db *mongo.Database) *EntityRepository {
	return &EntityRepository{db: db}
}

// ResolveEntities looks up every ref with one $in query per kind. Refs that
// no longer resolve are absent from the result.
func (r *EntityRepository) ResolveEntities(ctx context.Context, refs []models.EntityRef) (map[models.EntityRef]models.EntitySummary, error) {
	byKind := make(map[models.EntityKind][]primitive.ObjectID)
	for _, ref := range refs {
		byKind[ref.Kind] = append(byKind[ref.Kind], ref.ID)
	}

	out := make(map[models.EntityRef]models.EntitySummary, len(refs))
	for kind, ids := range byKind {
		src, ok := entitySources[kind]
		if !ok {
			continue
		}
		opts := options.Find().SetProjection(bson.M{src.titleField: 1})
		cursor, err := r.db.Collection(src.collection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s entities: %w", kind, err)
		}

		var docs []bson.M
		err = cursor.All(ctx, &docs)
		cursor.Close(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s entities: %w", kind, err)
		}

		for _, doc := range docs {
			id, ok := doc["_id"].(primitive.ObjectID)
			if !ok {
				continue
			}
			title, _ := doc[src.titleField].(string)
			ref := models.EntityRef{Kind: kind, ID: id}
			out[ref] = models.EntitySummary{Kind: kind, ID: id, Title: truncate(title, maxTitleLen)}
		}
	}
	return out, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
