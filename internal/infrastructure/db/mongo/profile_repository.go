package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/anurag-po/CODSOFT/internal/core/domain"
)

type ProfileRepository struct {
	coll *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{coll: db.Collection(collectionProfiles)}
}

type profileDoc struct {
	ID        string    `bson:"_id"`
	Role      string    `bson:"role"`
	FullName  string    `bson:"full_name"`
	Username  string    `bson:"username,omitempty"`
	Email     string    `bson:"email"`
	AvatarURL string    `bson:"avatar_url,omitempty"`
	Website   string    `bson:"website,omitempty"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func newProfileDoc(p *domain.Profile) profileDoc {
	return profileDoc{
		ID:        p.ID,
		Role:      string(p.Role),
		FullName:  p.FullName,
		Username:  p.Username,
		Email:     p.Email,
		AvatarURL: p.AvatarURL,
		Website:   p.Website,
		UpdatedAt: p.UpdatedAt,
	}
}

func (d profileDoc) toDomain() *domain.Profile {
	return &domain.Profile{
		ID:        d.ID,
		Role:      domain.Role(d.Role),
		FullName:  d.FullName,
		Username:  d.Username,
		Email:     d.Email,
		AvatarURL: d.AvatarURL,
		Website:   d.Website,
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, newProfileDoc(p)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrProfileExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc profileDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("find profile: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *ProfileRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Profile, error) {
	if len(ids) == 0 {
		return []*domain.Profile{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find profiles: %w", err)
	}
	var docs []profileDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}

	out := make([]*domain.Profile, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (r *ProfileRepository) Update(ctx context.Context, p *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, newProfileDoc(p))
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
