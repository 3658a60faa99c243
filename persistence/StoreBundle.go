package persistence

import (
	"errors"
	"log"
	"os"

	"rolegate/client/es"
	"rolegate/client/mongodb"
	"rolegate/store"
)

// ActiveStoreBundle is the process wide client pair. It is assigned exactly
// once during startup and reused by every request afterwards; the clients it
// holds are safe for concurrent use.
var ActiveStoreBundle *StoreBundle

type StoreConfig struct {
	MongoURL      string
	MongoDatabase string
	IndexPrefix   string
}

// ParseStoreConfigFromEnv reads MONGODB_URL, MONGODB_DATABASE and
// INDEX_PREFIX. The elasticsearch client reads ELASTICSEARCH_URL on its own.
func ParseStoreConfigFromEnv() (*StoreConfig, error) {
	c := StoreConfig{
		MongoURL:      os.Getenv("MONGODB_URL"),
		MongoDatabase: os.Getenv("MONGODB_DATABASE"),
		IndexPrefix:   os.Getenv("INDEX_PREFIX"),
	}
	if c.MongoURL == "" {
		return nil, errors.New("environment variable MONGODB_URL is not set")
	}
	if c.MongoDatabase == "" {
		return nil, errors.New("environment variable MONGODB_DATABASE is not set")
	}
	if c.IndexPrefix == "" {
		return nil, errors.New("environment variable INDEX_PREFIX is not set")
	}
	return &c, nil
}

type StoreBundle struct {
	StoreConfig *StoreConfig

	documents   store.DocumentStore
	search      store.SearchStore
	mongoClient *mongodb.Client
}

// NewStoreBundleWith assembles a bundle around already built store clients.
func NewStoreBundleWith(documents store.DocumentStore, search store.SearchStore) *StoreBundle {
	return &StoreBundle{documents: documents, search: search}
}

func (b *StoreBundle) Start() error {
	mongoClient, err := mongodb.NewClient(b.StoreConfig.MongoURL, b.StoreConfig.MongoDatabase)
	if err != nil {
		return err
	}
	b.mongoClient = mongoClient
	b.documents = mongoClient
	b.search = es.NewClientFromEnv()
	return nil
}

func (b *StoreBundle) Stop() {
	if b.mongoClient != nil {
		if err := b.mongoClient.Close(); err != nil {
			log.Printf("failed to close document store client: %v", err)
		}
		b.mongoClient = nil
		b.documents = nil
	}
	b.search = nil
}

func (b *StoreBundle) DocumentStore() store.DocumentStore {
	return b.documents
}

func (b *StoreBundle) SearchStore() store.SearchStore {
	return b.search
}
