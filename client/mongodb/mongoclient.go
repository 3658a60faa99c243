// Package mongodb implements the document store contract on MongoDB. Every
// logical resource lives in a per tenant collection whose name the caller has
// already resolved; this client only executes.
package mongodb

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"rolegate/store"

	"github.com/sirupsen/logrus"
	"github.com/sony/sonyflake"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

type Client struct {
	client   *mongo.Client
	dbName   string
	idWorker *sonyflake.Sonyflake
}

func NewClient(url, dbName string) (*Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(url))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &Client{client: client, dbName: dbName, idWorker: sonyflake.NewSonyflake(sonyflake.Settings{})}, nil
}

func (c *Client) Close() error {
	return c.client.Disconnect(context.Background())
}

func (c *Client) collection(storageID string) *mongo.Collection {
	return c.client.Database(c.dbName).Collection(storageID)
}

func (c *Client) Search(ctx context.Context, storageID string, opts store.SearchOptions, lookups []store.LookupSpec) (*store.SearchResult, error) {
	pipeline := BuildPipeline(opts, lookups)
	logrus.Debugf("document search on %s: %v", storageID, pipeline)

	cursor, err := c.collection(storageID).Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	items, err := toSources(docs)
	if err != nil {
		return nil, err
	}

	totalCount := len(items)
	if opts.Size > 0 {
		filter := MatchFilter(opts)
		if filter == nil {
			filter = bson.M{}
		}
		count, err := c.collection(storageID).CountDocuments(ctx, filter)
		if err != nil {
			return nil, err
		}
		totalCount = int(count)
	}

	return &store.SearchResult{Items: items, TotalCount: totalCount, Status: http.StatusOK}, nil
}

func (c *Client) Get(ctx context.Context, storageID, id string, lookups []store.LookupSpec) (*store.ItemResult, error) {
	opts := store.SearchOptions{Conditions: []store.Condition{{"_id": id}}}
	cursor, err := c.collection(storageID).Aggregate(ctx, BuildPipeline(opts, lookups))
	if err != nil {
		return nil, err
	}
	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return &store.ItemResult{Status: http.StatusOK}, nil
	}

	item, err := toSource(docs[0])
	if err != nil {
		return nil, err
	}
	return &store.ItemResult{Item: &item, Status: http.StatusOK}, nil
}

func (c *Client) Create(ctx context.Context, storageID string, doc interface{}) (*store.ItemResult, error) {
	record, err := c.newRecord(doc)
	if err != nil {
		return nil, err
	}

	if _, err := c.collection(storageID).InsertOne(ctx, record); err != nil {
		return nil, err
	}
	item, err := toSource(record)
	if err != nil {
		return nil, err
	}
	return &store.ItemResult{Item: &item, Status: http.StatusCreated}, nil
}

func (c *Client) Update(ctx context.Context, storageID, id string, doc interface{}) (*store.ItemResult, error) {
	changes, err := toDocument(doc)
	if err != nil {
		return nil, err
	}
	delete(changes, "_id")
	changes["updatedAt"] = time.Now().Format(time.RFC3339)

	after := options.After
	res := c.collection(storageID).FindOneAndUpdate(ctx, bson.M{"_id": id},
		bson.M{"$set": changes}, &options.FindOneAndUpdateOptions{ReturnDocument: &after})

	var updated bson.M
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			return &store.ItemResult{Status: http.StatusNotFound}, nil
		}
		return nil, err
	}
	item, err := toSource(updated)
	if err != nil {
		return nil, err
	}
	return &store.ItemResult{Item: &item, Status: http.StatusOK}, nil
}

func (c *Client) Delete(ctx context.Context, storageID, id string) (*store.ItemResult, error) {
	res := c.collection(storageID).FindOneAndDelete(ctx, bson.M{"_id": id})

	var deleted bson.M
	if err := res.Decode(&deleted); err != nil {
		if err == mongo.ErrNoDocuments {
			return &store.ItemResult{Status: http.StatusNotFound}, nil
		}
		return nil, err
	}
	item, err := toSource(deleted)
	if err != nil {
		return nil, err
	}
	return &store.ItemResult{Item: &item, Status: http.StatusOK}, nil
}

func (c *Client) IsItemUnique(ctx context.Context, storageID string, conditions []store.Condition) (*store.UniqueResult, error) {
	filter := MatchFilter(store.SearchOptions{Conditions: conditions})
	if filter == nil {
		filter = bson.M{}
	}
	count, err := c.collection(storageID).CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &store.UniqueResult{Unique: count == 0, Status: http.StatusOK}, nil
}

func (c *Client) DeleteMany(ctx context.Context, storageID string, conditions []store.Condition) (*store.StatusResult, error) {
	filter := MatchFilter(store.SearchOptions{Conditions: conditions})
	if filter == nil {
		filter = bson.M{}
	}
	if _, err := c.collection(storageID).DeleteMany(ctx, filter); err != nil {
		return nil, err
	}
	return &store.StatusResult{Status: http.StatusOK}, nil
}

func (c *Client) InsertMany(ctx context.Context, storageID string, docs []interface{}) (*store.SearchResult, error) {
	records := make([]interface{}, 0, len(docs))
	items := make([]store.Source, 0, len(docs))
	for _, doc := range docs {
		record, err := c.newRecord(doc)
		if err != nil {
			return nil, err
		}
		item, err := toSource(record)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
		items = append(items, item)
	}

	if len(records) > 0 {
		if _, err := c.collection(storageID).InsertMany(ctx, records); err != nil {
			return nil, err
		}
	}
	return &store.SearchResult{Items: items, TotalCount: len(items), Status: http.StatusCreated}, nil
}

// newRecord assigns the generated id and the creation timestamp a fresh
// document carries.
func (c *Client) newRecord(doc interface{}) (bson.M, error) {
	record, err := toDocument(doc)
	if err != nil {
		return nil, err
	}
	id, err := c.idWorker.NextID()
	if err != nil {
		return nil, err
	}
	record["_id"] = strconv.FormatUint(id, 10)
	if _, found := record["createdAt"]; !found {
		record["createdAt"] = time.Now().Format(time.RFC3339)
	}
	return record, nil
}

func toDocument(doc interface{}) (bson.M, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	record := bson.M{}
	if err := bson.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	return record, nil
}

// Timestamps and ids are stored as plain strings, so relaxed extended JSON is
// ordinary JSON here.
func toSource(doc bson.M) (store.Source, error) {
	raw, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return "", err
	}
	return store.Source(raw), nil
}

func toSources(docs []bson.M) ([]store.Source, error) {
	items := make([]store.Source, 0, len(docs))
	for _, doc := range docs {
		item, err := toSource(doc)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
