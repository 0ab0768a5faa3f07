package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

type JobRepository struct {
	coll *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{coll: db.Collection(collectionJobs)}
}

type jobDoc struct {
	ID          string    `bson:"_id"`
	EmployerID  string    `bson:"employer_id"`
	Title       string    `bson:"title"`
	Company     string    `bson:"company"`
	Location    string    `bson:"location"`
	Type        string    `bson:"type"`
	Description string    `bson:"description"`
	IsActive    bool      `bson:"is_active"`
	CreatedAt   time.Time `bson:"created_at"`
}

func newJobDoc(j *domain.Job) jobDoc {
	return jobDoc{
		ID:          j.ID,
		EmployerID:  j.EmployerID,
		Title:       j.Title,
		Company:     j.Company,
		Location:    j.Location,
		Type:        j.Type,
		Description: j.Description,
		IsActive:    j.IsActive,
		CreatedAt:   j.CreatedAt,
	}
}

func (d jobDoc) toDomain() *domain.Job {
	return &domain.Job{
		ID:          d.ID,
		EmployerID:  d.EmployerID,
		Title:       d.Title,
		Company:     d.Company,
		Location:    d.Location,
		Type:        d.Type,
		Description: d.Description,
		IsActive:    d.IsActive,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, newJobDoc(job)); err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc jobDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *JobRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Job, error) {
	if len(ids) == 0 {
		return []*domain.Job{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

func (r *JobRepository) List(ctx context.Context, filter domain.JobFilter) ([]*domain.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}
	return r.find(ctx, jobFilterQuery(filter), opts)
}

// jobFilterQuery translates a JobFilter into a Mongo query document.
func jobFilterQuery(filter domain.JobFilter) bson.M {
	q := bson.M{}
	if filter.EmployerID != "" {
		q["employer_id"] = filter.EmployerID
	}
	if filter.ActiveOnly {
		q["is_active"] = true
	}
	if filter.Search != "" {
		q["title"] = primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
	}
	return q
}

func (r *JobRepository) find(ctx context.Context, q bson.M, opts *options.FindOptions) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	var docs []jobDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	out := make([]*domain.Job, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *JobRepository) Update(ctx context.Context, job *domain.Job) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": job.ID}, newJobDoc(job))
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}
