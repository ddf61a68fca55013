package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	driver "go.mongodb.org/mongo-driver/mongo"
)

func insertedHex(res *driver.InsertOneResult) string {
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return ""
}

func aggregatePage[T any](ctx context.Context, coll *driver.Collection, pipeline driver.Pipeline) (pageResult[T], error) {
	var res pageResult[T]
	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return res, err
	}
	defer cur.Close(ctx)

	if cur.Next(ctx) {
		if err := cur.Decode(&res); err != nil {
			return res, err
		}
	}
	return res, cur.Err()
}
