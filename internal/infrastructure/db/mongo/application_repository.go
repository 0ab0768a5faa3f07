package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

type ApplicationRepository struct {
	coll *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{coll: db.Collection(collectionApplications)}
}

type applicationDoc struct {
	ID          string    `bson:"_id"`
	JobID       string    `bson:"job_id"`
	CandidateID string    `bson:"candidate_id"`
	ResumeURL   string    `bson:"resume_url"`
	Status      string    `bson:"status"`
	CreatedAt   time.Time `bson:"created_at"`
}

func (d applicationDoc) toDomain() *domain.Application {
	return &domain.Application{
		ID:          d.ID,
		JobID:       d.JobID,
		CandidateID: d.CandidateID,
		ResumeURL:   d.ResumeURL,
		Status:      d.Status,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := applicationDoc{
		ID:          app.ID,
		JobID:       app.JobID,
		CandidateID: app.CandidateID,
		ResumeURL:   app.ResumeURL,
		Status:      app.Status,
		CreatedAt:   app.CreatedAt,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

func (r *ApplicationRepository) ListByCandidate(ctx context.Context, candidateID string) ([]*domain.Application, error) {
	return r.find(ctx, bson.M{"candidate_id": candidateID})
}

func (r *ApplicationRepository) ListByJobIDs(ctx context.Context, jobIDs []string) ([]*domain.Application, error) {
	if len(jobIDs) == 0 {
		return []*domain.Application{}, nil
	}
	return r.find(ctx, bson.M{"job_id": bson.M{"$in": jobIDs}})
}

func (r *ApplicationRepository) DeleteByJobID(ctx context.Context, jobID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"job_id": jobID})
	if err != nil {
		return 0, fmt.Errorf("delete applications: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *ApplicationRepository) find(ctx context.Context, q bson.M) ([]*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("find applications: %w", err)
	}
	var docs []applicationDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}

	out := make([]*domain.Application, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}
