package userRepo

import (
	"fmt"
	"time"

	"workhive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SearchWorkers runs the contractor-facing worker search pipeline.
func (r *MongoUserRepo) SearchWorkers(criteria WorkerSearchCriteria) ([]models.WorkerProfile, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	var pipeline mongo.Pipeline

	// $geoNear must come first to filter and sort by distance.
	if criteria.Origin.IsSet() {
		geoNear := bson.D{
			{Key: "near", Value: bson.D{
				{Key: "type", Value: "Point"},
				{Key: "coordinates", Value: criteria.Origin.Coordinates},
			}},
			{Key: "distanceField", Value: "distance"},
			{Key: "spherical", Value: true},
		}
		if criteria.MaxDistanceKm > 0 {
			geoNear = append(geoNear, bson.E{Key: "maxDistance", Value: criteria.MaxDistanceKm * 1000})
		}
		pipeline = append(pipeline, bson.D{{Key: "$geoNear", Value: geoNear}})
	}

	matchFilter := bson.M{"role": models.RoleWorker}
	var andClauses []bson.M
	if len(criteria.SkillRegexes) > 0 {
		ors := make([]bson.M, 0, len(criteria.SkillRegexes))
		for _, s := range criteria.SkillRegexes {
			ors = append(ors, bson.M{"skills": bson.M{"$regex": s, "$options": "i"}})
		}
		andClauses = append(andClauses, bson.M{"$or": ors})
	}
	if criteria.QueryRegex != "" {
		andClauses = append(andClauses, bson.M{"$or": []bson.M{
			{"name": bson.M{"$regex": criteria.QueryRegex, "$options": "i"}},
			{"skills": bson.M{"$regex": criteria.QueryRegex, "$options": "i"}},
		}})
	}
	if len(andClauses) > 0 {
		matchFilter["$and"] = andClauses
	}
	if criteria.MinRating > 0 {
		matchFilter["averageRating"] = bson.M{"$gte": criteria.MinRating}
	}
	pipeline = append(pipeline, bson.D{{Key: "$match", Value: matchFilter}})

	// Nearest first when an origin was given, trust breaking ties;
	// otherwise best-rated first.
	if criteria.Origin.IsSet() {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{
			{Key: "distance", Value: 1},
			{Key: "trustScore", Value: -1},
		}}})
	} else {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{
			{Key: "averageRating", Value: -1},
			{Key: "trustScore", Value: -1},
		}}})
	}

	limit := criteria.Limit
	if limit <= 0 {
		limit = 50
	}
	pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("worker search aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var workers []models.WorkerProfile
	if err := cursor.All(ctx, &workers); err != nil {
		return nil, fmt.Errorf("failed to decode worker profiles: %w", err)
	}
	return workers, nil
}

// TopRatedWorkers returns the globally best-rated workers.
func (r *MongoUserRepo) TopRatedWorkers(limit int) ([]models.WorkerProfile, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "averageRating", Value: -1}, {Key: "trustScore", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{"role": models.RoleWorker}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top rated workers: %w", err)
	}
	defer cursor.Close(ctx)

	var workers []models.WorkerProfile
	if err := cursor.All(ctx, &workers); err != nil {
		return nil, fmt.Errorf("failed to decode worker profiles: %w", err)
	}
	return workers, nil
}
