package mongo

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	collectionUsers        = "users"
	collectionProfiles     = "profiles"
	collectionJobs         = "jobs"
	collectionApplications = "applications"
)

func indexModels() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		collectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		collectionJobs: {
			{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "employer_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		collectionApplications: {
			{Keys: bson.D{{Key: "candidate_id", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "job_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}
}
