package mongo

import (
	"context"
	"errors"
	"fmt"

	"go-jobportal-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
)

type applicationRepo struct {
	coll *driver.Collection
}

func NewApplicationRepository(db *driver.Database) domain.ApplicationRepository {
	return &applicationRepo{coll: db.Collection(applicationsCollection)}
}

// Create relies on the unique (candidateId, jobId) index for concurrent submissions.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	res, err := r.coll.InsertOne(ctx, newApplicationDoc(app))
	if err != nil {
		if driver.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert application: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert application: %w", err)
	}
	app.ID = insertedHex(res)
	return nil
}

func (r *applicationRepo) GetByID(ctx context.Context, id string) (*domain.Application, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, fmt.Errorf("application %s: %w", id, domain.ErrNotFound)
	}

	var doc applicationDoc
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, fmt.Errorf("application %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find application %s: %w", id, err)
	}
	a := doc.toDomain()
	return &a, nil
}

func (r *applicationRepo) ExistsByCandidateAndJob(ctx context.Context, candidateID, jobID string) (bool, error) {
	n, err := r.Count(ctx, domain.ApplicationQuery{CandidateID: candidateID, JobID: jobID})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *applicationRepo) List(ctx context.Context, q domain.ApplicationQuery, p domain.PageRequest) ([]domain.Application, int64, error) {
	pipeline := PagePipeline(ApplicationFilter(q), SortDoc(p, domain.ApplicationSortFields, "appliedAt"), p)
	res, err := aggregatePage[applicationDoc](ctx, r.coll, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}
	apps := make([]domain.Application, 0, len(res.Content))
	for i := range res.Content {
		apps = append(apps, res.Content[i].toDomain())
	}
	return apps, res.total(), nil
}

func (r *applicationRepo) Count(ctx context.Context, q domain.ApplicationQuery) (int64, error) {
	n, err := r.coll.CountDocuments(ctx, ApplicationFilter(q))
	if err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return n, nil
}

func (r *applicationRepo) UpdateReview(ctx context.Context, app *domain.Application) error {
	oid, ok := parseID(app.ID)
	if !ok {
		return fmt.Errorf("application %s: %w", app.ID, domain.ErrNotFound)
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.D{{Key: "$set", Value: bson.D{
		{Key: "status", Value: string(app.Status)},
		{Key: "notes", Value: app.Notes},
		{Key: "reviewedAt", Value: app.ReviewedAt},
	}}})
	if err != nil {
		return fmt.Errorf("update application %s: %w", app.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("application %s: %w", app.ID, domain.ErrNotFound)
	}
	return nil
}
