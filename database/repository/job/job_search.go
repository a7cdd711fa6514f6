package jobRepo

import (
	"fmt"
	"time"

	"workhive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SearchJobs runs the worker-facing job search pipeline.
func (r *MongoJobRepo) SearchJobs(criteria JobSearchCriteria) ([]models.Job, error) {
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

	matchFilter := bson.M{"status": models.JobOpen}
	var andClauses []bson.M
	if len(criteria.SkillRegexes) > 0 {
		ors := make([]bson.M, 0, len(criteria.SkillRegexes))
		for _, s := range criteria.SkillRegexes {
			ors = append(ors, bson.M{"workType": bson.M{"$regex": s, "$options": "i"}})
		}
		andClauses = append(andClauses, bson.M{"$or": ors})
	}
	if criteria.QueryRegex != "" {
		andClauses = append(andClauses, bson.M{"$or": []bson.M{
			{"workType": bson.M{"$regex": criteria.QueryRegex, "$options": "i"}},
			{"description": bson.M{"$regex": criteria.QueryRegex, "$options": "i"}},
			{"address": bson.M{"$regex": criteria.QueryRegex, "$options": "i"}},
		}})
	}
	if len(andClauses) > 0 {
		matchFilter["$and"] = andClauses
	}
	if criteria.MinPay > 0 {
		matchFilter["paymentAmount"] = bson.M{"$gte": criteria.MinPay}
	}
	if len(criteria.ExcludeJobIDs) > 0 {
		matchFilter["id"] = bson.M{"$nin": criteria.ExcludeJobIDs}
	}
	pipeline = append(pipeline, bson.D{{Key: "$match", Value: matchFilter}})

	// Nearest first when an origin was given; newest first otherwise.
	if criteria.Origin.IsSet() {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{
			{Key: "distance", Value: 1},
			{Key: "createdAt", Value: -1},
		}}})
	} else {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: bson.D{
			{Key: "createdAt", Value: -1},
		}}})
	}

	limit := criteria.Limit
	if limit <= 0 {
		limit = 50
	}
	pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("job search aggregation failed: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []models.Job
	if err := cursor.All(ctx, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode jobs: %w", err)
	}
	return jobs, nil
}
