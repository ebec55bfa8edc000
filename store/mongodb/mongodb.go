// Package mongodb implements the store interfaces on the MongoDB driver.
package mongodb

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"isoko/store"
)

type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, uri, name string) (*DB, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	log.Println("Connected to MongoDB")
	return &DB{client: client, db: client.Database(name)}, nil
}

func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// Stores wires each collection to its store implementation.
func (d *DB) Stores() *store.Store {
	return &store.Store{
		Posts:      &posts{c: d.db.Collection("posts")},
		Users:      &users{c: d.db.Collection("users")},
		Categories: &categories{c: d.db.Collection("categories")},
		Media:      &media{c: d.db.Collection("post_media")},
		Hashtags: &hashtags{
			tags:  d.db.Collection("hashtags"),
			joins: d.db.Collection("post_hashtags"),
		},
		Likes:     &pairs{c: d.db.Collection("likes")},
		Bookmarks: &pairs{c: d.db.Collection("bookmarks")},
		Comments:  &comments{c: d.db.Collection("comments")},
		Follows:   &follows{c: d.db.Collection("follows")},
	}
}

// EnsureIndexes creates every index the read and write paths depend on:
// unique constraints, 2dsphere geometry, the text index behind search, and
// the sort indexes the feeds use. Safe to run on every startup.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	for coll, idx := range indexSpecs() {
		if _, err := d.db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}

func indexSpecs() map[string][]mongo.IndexModel {
	unique := options.Index().SetUnique(true)
	return map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{"email", 1}}, Options: unique},
			{Keys: bson.D{{"phone", 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
			{Keys: bson.D{{"location", "2dsphere"}}},
		},
		"posts": {
			{Keys: bson.D{{"user_id", 1}}},
			{Keys: bson.D{{"category_id", 1}}},
			{Keys: bson.D{{"location", "2dsphere"}}},
			{Keys: bson.D{{"created_at", -1}}},
			{Keys: bson.D{{"like_count", -1}}},
			{Keys: bson.D{{"created_at", -1}, {"like_count", -1}}},
			{Keys: bson.D{{"title", "text"}, {"description", "text"}}},
		},
		"categories": {
			{Keys: bson.D{{"name", 1}}, Options: unique},
			{Keys: bson.D{{"slug", 1}}, Options: unique},
		},
		"post_media": {
			{Keys: bson.D{{"post_id", 1}, {"sort_order", 1}}},
		},
		"hashtags": {
			{Keys: bson.D{{"name", 1}}, Options: unique},
		},
		"post_hashtags": {
			{Keys: bson.D{{"post_id", 1}}},
			{Keys: bson.D{{"hashtag_id", 1}}},
		},
		"likes": {
			{Keys: bson.D{{"user_id", 1}, {"post_id", 1}}, Options: unique},
			{Keys: bson.D{{"post_id", 1}}},
		},
		"bookmarks": {
			{Keys: bson.D{{"user_id", 1}, {"post_id", 1}}, Options: unique},
			{Keys: bson.D{{"post_id", 1}}},
		},
		"comments": {
			{Keys: bson.D{{"post_id", 1}, {"created_at", -1}}},
		},
		"follows": {
			{Keys: bson.D{{"follower_id", 1}, {"following_id", 1}}, Options: unique},
			{Keys: bson.D{{"follower_id", 1}}},
		},
	}
}
