package mongodb

import (
	"context"
	"errors"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"isoko/models"
	"isoko/store"
	"isoko/utils"
)

type posts struct {
	c *mongo.Collection
}

func (p *posts) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := p.c.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// activeOnly is the baseline every post query starts from: soft-deleted and
// unavailable posts never reach a read path.
func activeOnly() bson.M {
	return bson.M{"is_deleted": false, "is_available": true}
}

func filterQuery(f store.PostFilter) bson.M {
	q := activeOnly()

	if f.Category != nil {
		q["category_id"] = *f.Category
	}
	if !f.CreatedSince.IsZero() {
		q["created_at"] = bson.M{"$gte": f.CreatedSince}
	}

	if f.Feed != nil {
		trending := bson.M{
			"created_at": bson.M{"$gte": f.Feed.TrendingSince},
			"$expr": bson.M{"$gt": bson.A{
				bson.M{"$add": bson.A{"$like_count", "$comment_count"}},
				0,
			}},
		}
		if len(f.Feed.Owners) > 0 {
			q["$or"] = bson.A{
				bson.M{"user_id": bson.M{"$in": f.Feed.Owners}},
				trending,
			}
		} else {
			for k, v := range trending {
				q[k] = v
			}
		}
	}

	if f.Search != nil {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search.Query), Options: "i"}
		or := bson.A{
			bson.M{"$text": bson.M{"$search": f.Search.Query}},
			bson.M{"title": rx},
			bson.M{"description": rx},
		}
		if len(f.Search.TaggedIDs) > 0 {
			or = append(or, bson.M{"_id": bson.M{"$in": f.Search.TaggedIDs}})
		}
		q["$or"] = or
	}

	return q
}

func sortSpec(s store.Sort) bson.D {
	if s == store.SortPopular {
		return bson.D{{"like_count", -1}, {"comment_count", -1}, {"created_at", -1}}
	}
	return bson.D{{"created_at", -1}}
}

func (p *posts) Find(ctx context.Context, f store.PostFilter, sort store.Sort, skip, limit int64) ([]models.Post, error) {
	opts := options.Find().SetSort(sortSpec(sort)).SetSkip(skip).SetLimit(limit)
	cursor, err := p.c.Find(ctx, filterQuery(f), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var result []models.Post
	if err := cursor.All(ctx, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *posts) Count(ctx context.Context, f store.PostFilter) (int64, error) {
	return p.c.CountDocuments(ctx, filterQuery(f))
}

// FindNearby runs a $geoNear pipeline so results are ordered by true
// distance across the whole result set before skip/limit, not re-sorted
// within a page.
func (p *posts) FindNearby(ctx context.Context, lat, lng float64, radiusMeters int, skip, limit int64) ([]store.NearbyPost, error) {
	pipeline := mongo.Pipeline{
		{{"$geoNear", bson.M{
			"near":          bson.M{"type": "Point", "coordinates": bson.A{lng, lat}},
			"distanceField": "distance",
			"maxDistance":   radiusMeters,
			"spherical":     true,
			"query":         activeOnly(),
		}}},
		{{"$skip", skip}},
		{{"$limit", limit}},
	}

	cursor, err := p.c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		models.Post `bson:",inline"`
		Distance    float64 `bson:"distance"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	result := make([]store.NearbyPost, len(rows))
	for i, r := range rows {
		result[i] = store.NearbyPost{Post: r.Post, DistanceMeters: r.Distance}
	}
	return result, nil
}

// CountNearby uses $geoWithin because a count cannot run over a $geoNear
// cursor; $centerSphere takes the radius in radians.
func (p *posts) CountNearby(ctx context.Context, lat, lng float64, radiusMeters int) (int64, error) {
	q := activeOnly()
	q["location"] = bson.M{"$geoWithin": bson.M{
		"$centerSphere": bson.A{
			bson.A{lng, lat},
			float64(radiusMeters) / 1000 / utils.EarthRadiusKm,
		},
	}}
	return p.c.CountDocuments(ctx, q)
}

func (p *posts) inc(ctx context.Context, id primitive.ObjectID, field string, delta int) error {
	_, err := p.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{field: delta}})
	return err
}

func (p *posts) IncLikeCount(ctx context.Context, id primitive.ObjectID, delta int) error {
	return p.inc(ctx, id, "like_count", delta)
}

func (p *posts) IncCommentCount(ctx context.Context, id primitive.ObjectID, delta int) error {
	return p.inc(ctx, id, "comment_count", delta)
}

func (p *posts) IncShareCount(ctx context.Context, id primitive.ObjectID) error {
	return p.inc(ctx, id, "share_count", 1)
}
