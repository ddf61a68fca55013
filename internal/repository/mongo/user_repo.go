package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-jobportal-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
)

type userRepo struct {
	coll *driver.Collection
}

func NewUserRepository(db *driver.Database) domain.UserRepository {
	return &userRepo{coll: db.Collection(usersCollection)}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	doc := newUserDoc(user)
	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if driver.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert user: %w", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	user.ID = insertedHex(res)
	return nil
}

func (r *userRepo) findOne(ctx context.Context, filter bson.D, what string) (*domain.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, driver.ErrNoDocuments) {
			return nil, fmt.Errorf("user %s: %w", what, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("find user %s: %w", what, err)
	}
	u := doc.toDomain()
	return &u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return r.findOne(ctx, bson.D{{Key: "_id", Value: oid}}, id)
}

func (r *userRepo) GetByEmailOrUsername(ctx context.Context, value string) (*domain.User, error) {
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "email", Value: value}},
		bson.D{{Key: "username", Value: value}},
	}}}
	return r.findOne(ctx, filter, value)
}

func (r *userRepo) exists(ctx context.Context, filter bson.D) (bool, error) {
	n, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return n > 0, nil
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, bson.D{{Key: "email", Value: email}})
}

func (r *userRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, bson.D{{Key: "username", Value: username}})
}

func (r *userRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error) {
	out := make(map[string]*domain.User, len(ids))
	oids := parseIDs(ids)
	if len(oids) == 0 {
		return out, nil
	}

	cur, err := r.coll.Find(ctx, bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}}})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	var docs []userDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	for i := range docs {
		u := docs[i].toDomain()
		out[u.ID] = &u
	}
	return out, nil
}

func (r *userRepo) List(ctx context.Context, q domain.UserQuery, p domain.PageRequest) ([]domain.User, int64, error) {
	pipeline := PagePipeline(UserFilter(q), SortDoc(p, domain.UserSortFields, "createdAt"), p)
	res, err := aggregatePage[userDoc](ctx, r.coll, pipeline)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	users := make([]domain.User, 0, len(res.Content))
	for i := range res.Content {
		users = append(users, res.Content[i].toDomain())
	}
	return users, res.total(), nil
}

func (r *userRepo) SetActive(ctx context.Context, id string, active bool, at time.Time) error {
	oid, ok := parseID(id)
	if !ok {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	res, err := r.coll.UpdateByID(ctx, oid, bson.D{{Key: "$set", Value: bson.D{
		{Key: "isActive", Value: active},
		{Key: "updatedAt", Value: at},
	}}})
	if err != nil {
		return fmt.Errorf("update user %s: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
