package mongo

import (
	"regexp"

	"go-jobportal-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"
)

// containsInsensitive matches s literally anywhere in the field, ignoring case.
func containsInsensitive(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}

// JobFilter translates a JobQuery into a find/match document.
func JobFilter(q domain.JobQuery) bson.D {
	filter := bson.D{}
	if q.ActiveOnly {
		filter = append(filter, bson.E{Key: "isActive", Value: true})
	}
	if q.PostedBy != "" {
		filter = append(filter, bson.E{Key: "postedBy", Value: q.PostedBy})
	}
	if q.Term != "" {
		re := containsInsensitive(q.Term)
		filter = append(filter, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "title", Value: re}},
			bson.D{{Key: "description", Value: re}},
			bson.D{{Key: "location", Value: re}},
			bson.D{{Key: "skills", Value: q.Term}},
		}})
	}
	if q.Title != "" {
		filter = append(filter, bson.E{Key: "title", Value: containsInsensitive(q.Title)})
	}
	if q.Location != "" {
		filter = append(filter, bson.E{Key: "location", Value: containsInsensitive(q.Location)})
	}
	if len(q.Skills) > 0 {
		filter = append(filter, bson.E{Key: "skills", Value: bson.D{{Key: "$in", Value: q.Skills}}})
	}
	if q.MaxExperience != nil {
		// $lte never matches null or missing fields.
		filter = append(filter, bson.E{Key: "experienceRequired", Value: bson.D{{Key: "$lte", Value: *q.MaxExperience}}})
	}
	return filter
}

func ApplicationFilter(q domain.ApplicationQuery) bson.D {
	filter := bson.D{}
	if q.CandidateID != "" {
		filter = append(filter, bson.E{Key: "candidateId", Value: q.CandidateID})
	}
	if q.JobID != "" {
		filter = append(filter, bson.E{Key: "jobId", Value: q.JobID})
	}
	if q.Status != "" {
		filter = append(filter, bson.E{Key: "status", Value: string(q.Status)})
	}
	return filter
}

func UserFilter(q domain.UserQuery) bson.D {
	filter := bson.D{}
	if q.Role != "" {
		filter = append(filter, bson.E{Key: "role", Value: string(q.Role)})
	}
	return filter
}

// SortDoc resolves p.SortBy through fields, falling back to def, and adds _id
// as a tie-breaker so pages are stable.
func SortDoc(p domain.PageRequest, fields map[string]string, def string) bson.D {
	field, ok := fields[p.SortBy]
	if !ok {
		field = def
	}
	dir := 1
	if p.SortDir == domain.SortDesc {
		dir = -1
	}
	return bson.D{{Key: field, Value: dir}, {Key: "_id", Value: dir}}
}

// PagePipeline returns content and total in a single aggregation.
func PagePipeline(filter bson.D, sort bson.D, p domain.PageRequest) driver.Pipeline {
	return driver.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$facet", Value: bson.D{
			{Key: "content", Value: bson.A{
				bson.D{{Key: "$sort", Value: sort}},
				bson.D{{Key: "$skip", Value: p.Offset()}},
				bson.D{{Key: "$limit", Value: int64(p.Size)}},
			}},
			{Key: "total", Value: bson.A{
				bson.D{{Key: "$count", Value: "n"}},
			}},
		}}},
	}
}

type pageResult[T any] struct {
	Content []T `bson:"content"`
	Total   []struct {
		N int64 `bson:"n"`
	} `bson:"total"`
}

func (r pageResult[T]) total() int64 {
	if len(r.Total) == 0 {
		return 0
	}
	return r.Total[0].N
}
