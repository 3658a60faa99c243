package mongodb

import (
	"regexp"

	"rolegate/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// BuildPipeline translates a search request into an aggregation pipeline:
// $match, the lookup stages in their declared order, $sort, $skip/$limit and
// $project. Entries of the condition list are alternatives ($or); the fields
// inside one entry all have to match.
func BuildPipeline(options store.SearchOptions, lookups []store.LookupSpec) mongo.Pipeline {
	pipeline := mongo.Pipeline{}

	if filter := MatchFilter(options); filter != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: filter}})
	}

	for _, lookup := range lookups {
		pipeline = append(pipeline, bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: lookup.From},
			{Key: "localField", Value: lookup.LocalField},
			{Key: "foreignField", Value: lookup.ForeignField},
			{Key: "as", Value: lookup.As},
		}}})
		if lookup.Unwind {
			pipeline = append(pipeline, bson.D{{Key: "$unwind", Value: bson.D{
				{Key: "path", Value: "$" + lookup.As},
				{Key: "preserveNullAndEmptyArrays", Value: true},
			}}})
		}
	}

	if len(options.Sort) > 0 {
		sort := bson.D{}
		for _, s := range options.Sort {
			order := 1
			if s.Order == "desc" {
				order = -1
			}
			sort = append(sort, bson.E{Key: s.Field, Value: order})
		}
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sort}})
	}

	if options.Size > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: options.From}})
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: options.Size}})
	}

	if len(options.SourceInclude) > 0 {
		project := bson.D{}
		for _, field := range options.SourceInclude {
			project = append(project, bson.E{Key: field, Value: 1})
		}
		pipeline = append(pipeline, bson.D{{Key: "$project", Value: project}})
	}

	return pipeline
}

// MatchFilter builds the $match document of a search request, nil when the
// request restricts nothing.
func MatchFilter(options store.SearchOptions) bson.M {
	var conditions bson.M
	switch len(options.Conditions) {
	case 0:
	case 1:
		conditions = bson.M(options.Conditions[0])
	default:
		alternatives := make([]bson.M, 0, len(options.Conditions))
		for _, c := range options.Conditions {
			alternatives = append(alternatives, bson.M(c))
		}
		conditions = bson.M{"$or": alternatives}
	}

	var word bson.M
	if options.Word != "" {
		word = bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(options.Word), Options: "i"}}
	}

	switch {
	case conditions == nil && word == nil:
		return nil
	case conditions == nil:
		return word
	case word == nil:
		return conditions
	default:
		return bson.M{"$and": []bson.M{conditions, word}}
	}
}
