package repository

import (
	"context"
	"fmt"

	"github.com/Dias221467/streamify/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProfileRepository runs the read-side joins for profiles and tweets.
// Nothing is cached; every call executes the pipeline.
type ProfileRepository struct {
	users  *mongo.Collection
	tweets *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{
		users:  db.Collection("users"),
		tweets: db.Collection("tweets"),
	}
}

// countLookup joins the number of documents in from whose field equals the
// current _id, as an array [{n}] under as.
func countLookup(from, field, as string, extra ...bson.M) bson.D {
	conds := bson.A{bson.M{"$eq": bson.A{"$" + field, "$$id"}}}
	for _, e := range extra {
		conds = append(conds, e)
	}
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "let", Value: bson.M{"id": "$_id"}},
		{Key: "pipeline", Value: mongo.Pipeline{
			{{Key: "$match", Value: bson.M{"$expr": bson.M{"$and": conds}}}},
			{{Key: "$count", Value: "n"}},
		}},
		{Key: "as", Value: as},
	}}}
}

// edgeFlagLookup joins at most one edge from viewer to the current _id.
func edgeFlagLookup(from, fromField, toField string, viewer primitive.ObjectID, as string) bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: from},
		{Key: "let", Value: bson.M{"id": "$_id"}},
		{Key: "pipeline", Value: mongo.Pipeline{
			{{Key: "$match", Value: bson.M{"$expr": bson.M{"$and": bson.A{
				bson.M{"$eq": bson.A{"$" + toField, "$$id"}},
				bson.M{"$eq": bson.A{"$" + fromField, viewer}},
			}}}}},
			{{Key: "$limit", Value: 1}},
			{{Key: "$project", Value: bson.M{"_id": 1}}},
		}},
		{Key: "as", Value: as},
	}}}
}

func countOf(as string) bson.M {
	return bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$" + as + ".n", 0}}, 0}}
}

func flagOf(as string) bson.M {
	return bson.M{"$gt": bson.A{bson.M{"$size": "$" + as}, 0}}
}

// GetProfile returns the user's profile with relationship and content counts
// as seen by viewer.
func (r *ProfileRepository) GetProfile(ctx context.Context, viewer, user primitive.ObjectID) (*models.ProfileView, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": user}}},
		countLookup("follows", "followee", "followers"),
		countLookup("follows", "follower", "following"),
		countLookup("subscriptions", "channel", "subscribers"),
		countLookup("subscriptions", "subscriber", "subscribed_to"),
		countLookup("videos", "owner", "videos"),
		countLookup("tweets", "owner", "tweets"),
		edgeFlagLookup("follows", "follower", "followee", viewer, "viewer_follow"),
		edgeFlagLookup("subscriptions", "subscriber", "channel", viewer, "viewer_subscription"),
		{{Key: "$project", Value: bson.D{
			{Key: "username", Value: 1},
			{Key: "full_name", Value: 1},
			{Key: "avatar", Value: 1},
			{Key: "cover_image", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "followers_count", Value: countOf("followers")},
			{Key: "following_count", Value: countOf("following")},
			{Key: "subscribers_count", Value: countOf("subscribers")},
			{Key: "subscribed_to_count", Value: countOf("subscribed_to")},
			{Key: "videos_count", Value: countOf("videos")},
			{Key: "tweets_count", Value: countOf("tweets")},
			{Key: "is_following", Value: flagOf("viewer_follow")},
			{Key: "is_subscribed", Value: flagOf("viewer_subscription")},
		}}},
	}

	cursor, err := r.users.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate profile: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}
	var view models.ProfileView
	if err := cursor.Decode(&view); err != nil {
		return nil, fmt.Errorf("failed to decode profile: %w", err)
	}
	return &view, nil
}

// tweetViewStages joins the author, like and comment counts and the viewer's like flag.
func tweetViewStages(viewer primitive.ObjectID) []bson.D {
	stages := lookupPublicUser("owner", "owner", false)
	return append(stages,
		countLookup("likes", "tweet", "likes"),
		countLookup("comments", "entity", "comments", bson.M{"$eq": bson.A{"$entity_kind", string(models.EntityTweet)}}),
		edgeFlagLookup("likes", "liked_by", "tweet", viewer, "viewer_like"),
		bson.D{{Key: "$project", Value: bson.D{
			{Key: "content", Value: 1},
			{Key: "owner", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "updated_at", Value: 1},
			{Key: "likes_count", Value: countOf("likes")},
			{Key: "comments_count", Value: countOf("comments")},
			{Key: "is_liked", Value: flagOf("viewer_like")},
		}}},
	)
}

// ListTweets pages tweets newest first, optionally restricted to one owner.
func (r *ProfileRepository) ListTweets(ctx context.Context, viewer primitive.ObjectID, owner *primitive.ObjectID, page, limit int) ([]models.TweetView, int64, error) {
	page, limit = normalizePage(page, limit)

	match := bson.M{}
	if owner != nil {
		match["owner"] = *owner
	}
	prefix := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
	}
	return aggregatePage[models.TweetView](ctx, r.tweets, pagedPipeline(prefix, page, limit, tweetViewStages(viewer)...))
}

// GetTweet returns one tweet view or ErrNotFound.
func (r *ProfileRepository) GetTweet(ctx context.Context, viewer, id primitive.ObjectID) (*models.TweetView, error) {
	pipeline := mongo.Pipeline{{{Key: "$match", Value: bson.M{"_id": id}}}}
	pipeline = append(pipeline, tweetViewStages(viewer)...)

	cursor, err := r.tweets.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate tweet: %w", err)
	}
	defer cursor.Close(ctx)

	var views []models.TweetView
	if err := cursor.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("failed to decode tweet: %w", err)
	}
	if len(views) == 0 {
		return nil, ErrNotFound
	}
	return &views[0], nil
}
