package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexModels lists the indexes each collection needs.
func IndexModels() map[string][]driver.IndexModel {
	return map[string][]driver.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_email")},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_username")},
			{Keys: bson.D{{Key: "role", Value: 1}}, Options: options.Index().SetName("idx_role")},
		},
		jobsCollection: {
			{Keys: bson.D{{Key: "isActive", Value: 1}}, Options: options.Index().SetName("idx_is_active")},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}, Options: options.Index().SetName("idx_created_at")},
			{Keys: bson.D{{Key: "postedBy", Value: 1}}, Options: options.Index().SetName("idx_posted_by")},
			{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "createdAt", Value: -1}}, Options: options.Index().SetName("idx_active_created")},
			{
				Keys: bson.D{
					{Key: "title", Value: "text"},
					{Key: "description", Value: "text"},
					{Key: "location", Value: "text"},
					{Key: "skills", Value: "text"},
				},
				Options: options.Index().SetName("txt_job"),
			},
		},
		applicationsCollection: {
			{Keys: bson.D{{Key: "candidateId", Value: 1}, {Key: "jobId", Value: 1}}, Options: options.Index().SetUnique(true).SetName("uniq_candidate_job")},
			{Keys: bson.D{{Key: "jobId", Value: 1}, {Key: "status", Value: 1}}, Options: options.Index().SetName("idx_job_status")},
			{Keys: bson.D{{Key: "status", Value: 1}}, Options: options.Index().SetName("idx_status")},
			{Keys: bson.D{{Key: "appliedAt", Value: -1}}, Options: options.Index().SetName("idx_applied_at")},
		},
	}
}

// EnsureIndexes creates missing indexes. Existing indexes with the same keys are left alone.
func EnsureIndexes(ctx context.Context, db *driver.Database) error {
	for coll, models := range IndexModels() {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}
