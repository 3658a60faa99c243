// Package es implements the search store contract on Elasticsearch. Only the
// module catalog is served from here; everything else lives in the document
// store.
package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"rolegate/store"

	"github.com/elastic/go-elasticsearch/v7"
	"github.com/elastic/go-elasticsearch/v7/estransport"
	"github.com/sirupsen/logrus"
)

type H map[string]interface{}

type ESSearchResult struct {
	Took    int            `json:"took"`
	TimeOut bool           `json:"timed_out"`
	Shards  ESSearchShards `json:"_shards"`
	Hits    ESSearchHits   `json:"hits"`
}
type ESSearchShards struct {
	Total      int `json:"total"`
	Successful int `json:"successful"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
}
type ESSearchHits struct {
	Total    ESSearchHitsTotal `json:"total"`
	MaxScore float64           `json:"max_score"`
	Hits     []ESSearchHit     `json:"hits"`
}
type ESSearchHitsTotal struct {
	Value    int    `json:"value"`
	Relation string `json:"relation"`
}
type ESSearchHit struct {
	Index string `json:"_index"`
	Type  string `json:"_type"`
	Id    string `json:"_id"`

	Score  float64       `json:"_score"`
	Source store.Source  `json:"_source"`
	Sort   []interface{} `json:"sort"`
}

type Client struct {
	esClient *elasticsearch.Client
}

// NewClientFromEnv builds the client from ELASTICSEARCH_URL.
func NewClientFromEnv() *Client {
	debug := os.Getenv("GIN_MODE") == "debug"
	conf := elasticsearch.Config{
		Logger:    &estransport.TextLogger{Output: os.Stdout, EnableRequestBody: debug, EnableResponseBody: debug},
		Transport: &TracingTransport{Transport: http.DefaultTransport},
	}
	client, err := elasticsearch.NewClient(conf)
	if err != nil {
		panic(err)
	}
	return &Client{esClient: client}
}

func (c *Client) Search(ctx context.Context, storageID string, options store.SearchOptions) (*store.SearchResult, error) {
	query := BuildQuery(options)

	var q bytes.Buffer
	if err := json.NewEncoder(&q).Encode(query); err != nil {
		return nil, err
	}
	logrus.Debugf("search index query on %s: %s", storageID, q.String())

	res, err := c.esClient.Search(
		c.esClient.Search.WithContext(ctx),
		c.esClient.Search.WithIndex(storageID),
		c.esClient.Search.WithBody(&q),
		c.esClient.Search.WithTrackTotalHits(true),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf(res.String())
	}

	r := ESSearchResult{}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf(res.String())
	}

	items := make([]store.Source, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		items = append(items, withDocumentId(hit))
	}
	return &store.SearchResult{Items: items, TotalCount: r.Hits.Total.Value, Status: http.StatusOK}, nil
}

// BuildQuery translates a search request into a bool filter query. Each entry
// of the condition list becomes a term group, the groups are alternatives.
func BuildQuery(options store.SearchOptions) H {
	filters := make([]H, 0, len(options.Conditions)+1)

	if len(options.Conditions) > 0 {
		groups := make([]H, 0, len(options.Conditions))
		for _, condition := range options.Conditions {
			terms := make([]H, 0, len(condition))
			for field, value := range condition {
				terms = append(terms, H{"term": H{field: value}})
			}
			groups = append(groups, H{"bool": H{"filter": terms}})
		}
		filters = append(filters, H{"bool": H{"should": groups, "minimum_should_match": 1}})
	}

	if options.Word != "" {
		filters = append(filters, H{"match": H{"name": H{"query": options.Word, "operator": "AND"}}})
	}

	query := H{"query": H{"bool": H{"filter": filters}}}

	if len(options.Sort) > 0 {
		sorts := make([]H, 0, len(options.Sort))
		for _, s := range options.Sort {
			sorts = append(sorts, H{s.Field: H{"order": s.Order}})
		}
		query["sort"] = sorts
	}

	if options.Size > 0 {
		query["from"] = options.From
		query["size"] = options.Size
	}

	if len(options.SourceInclude) > 0 {
		query["_source"] = options.SourceInclude
	}

	return query
}

// withDocumentId keeps the hit's _id visible in the returned document without
// disturbing the _source field order.
func withDocumentId(hit ESSearchHit) store.Source {
	source := string(hit.Source)
	if len(source) < 2 || source[0] != '{' {
		return hit.Source
	}
	idField, err := json.Marshal(hit.Id)
	if err != nil {
		return hit.Source
	}
	prefix := `{"_id":` + string(idField)
	if source == "{}" {
		return store.Source(prefix + "}")
	}
	return store.Source(prefix + "," + source[1:])
}
