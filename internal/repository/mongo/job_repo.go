package mongo

import (
	"context"
	"errors"
	"fmt"

	"go-jobportal-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
)

type jobRepo struct {
	coll *driver.Collection
}

func NewJobRepository(db *driver.Database) domain.JobRepository {
	return &jobRepo{coll: db.Collection(jobsCollection)}
}

func (r *jobRepo) Create(ctx context.Context, job *domain.Job) error {
	doc, err := newJobDoc(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	job.ID = insertedHex(res)
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id string) (*domain.Job, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
	}

	var doc jobDoc
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc); err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, fmt.Errorf("job %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find job %s: %w", id, err)
	}
	job, err := doc.toDomain()
	if err != nil {
		return nil, fmt.Errorf("decode job %s: %w", id, err)
	}
	return &job, nil
}

func (r *jobRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.Job, error) {
	out := make(map[string]*domain.Job, len(ids))
	oids := parseIDs(ids)
	if len(oids) == 0 {
		return out, nil
	}

	cur, err := r.coll.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}})
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	var docs []jobDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}
	for i := range docs {
		j, err := docs[i].toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode job: %w", err)
		}
		out[j.ID] = &j
	}
	return out, nil
}

func (r *jobRepo) Update(ctx context.Context, job *domain.Job) error {
	oid, ok := parseID(job.ID)
	if !ok {
		return fmt.Errorf("job %s: %w", job.ID, domain.ErrNotFound)
	}
	doc, err := newJobDoc(job)
	if err != nil {
		return fmt.Errorf("encode job: %w", err)
	}

	// postedBy and createdAt are never rewritten.
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "title", Value: doc.Title},
		{Key: "description", Value: doc.Description},
		{Key: "location", Value: doc.Location},
		{Key: "skills", Value: doc.Skills},
		{Key: "experienceRequired", Value: doc.ExperienceRequired},
		{Key: "salaryMin", Value: doc.SalaryMin},
		{Key: "salaryMax", Value: doc.SalaryMax},
		{Key: "employmentType", Value: doc.EmploymentType},
		{Key: "isActive", Value: doc.IsActive},
		{Key: "updatedAt", Value: doc.UpdatedAt},
	}}}
	res, err := r.coll.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update job %s: %w", job.ID, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("job %s: %w", job.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *jobRepo) List(ctx context.Context, q domain.JobQuery, p domain.PageRequest) ([]domain.Job, int64, error) {
	pipeline := PagePipeline(JobFilter(q), SortDoc(p, domain.JobSortFields, "createdAt"), p)
	res, err := aggregatePage[jobDoc](ctx, r.coll, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}
	jobs := make([]domain.Job, 0, len(res.Content))
	for i := range res.Content {
		j, err := res.Content[i].toDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("decode job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, res.total(), nil
}
