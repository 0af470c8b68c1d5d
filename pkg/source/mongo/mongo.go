// Package mongo loads stroke samples from a MongoDB collection.
//
// Each document in the collection carries one label and its samples:
//
//	{"label": "alpha", "samples": [{"strokes": [[{"x": 0.1, "y": 0.2}]]}]}
//
// Documents are read in _id order. Several documents may share a label;
// their samples are concatenated.
package mongo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	serrors "github.com/matzehuels/strokeset/pkg/errors"
	"github.com/matzehuels/strokeset/pkg/stroke"
)

// Document is the stored shape of one label's samples.
type Document struct {
	Label   string          `bson:"label"`
	Samples []stroke.Sample `bson:"samples"`
}

// Source reads all documents of one collection.
type Source struct {
	URI        string
	Database   string
	Collection string
	Logger     *log.Logger
}

// New returns a source for the given connection string and collection.
// An empty uri is a CONFIG error; nothing is dialed until Load.
func New(uri, database, collection string, logger *log.Logger) (*Source, error) {
	if uri == "" {
		return nil, serrors.New(serrors.ErrCodeConfig, "mongo connection string is empty")
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Source{URI: uri, Database: database, Collection: collection, Logger: logger}, nil
}

// Name returns the collection address with any password masked.
func (s *Source) Name() string {
	host := "?"
	if u, err := url.Parse(s.URI); err == nil {
		u.Path, u.RawQuery = "", ""
		host = u.Redacted()
	}
	return fmt.Sprintf("mongo:%s/%s.%s", host, s.Database, s.Collection)
}

// Load connects, reads every document and disconnects.
func (s *Source) Load(ctx context.Context) (*stroke.Dataset, error) {
	client, err := mongodriver.Connect(ctx, options.Client().ApplyURI(s.URI))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeConnection, err, "connect to mongo")
	}
	defer func() {
		if derr := client.Disconnect(context.Background()); derr != nil {
			s.Logger.Warn("mongo disconnect failed", "err", derr)
		}
	}()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeConnection, err, "ping mongo")
	}

	coll := client.Database(s.Database).Collection(s.Collection)
	cur, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeConnection, err, "query %s.%s", s.Database, s.Collection)
	}
	defer cur.Close(context.Background())

	ds := stroke.NewDataset()
	docs := 0
	for cur.Next(ctx) {
		var doc Document
		if err := cur.Decode(&doc); err != nil {
			return nil, serrors.Wrap(serrors.ErrCodeInvalidFormat, err, "decode document %d", docs)
		}
		if err := ds.Add(doc.Label, doc.Samples...); err != nil {
			return nil, err
		}
		docs++
	}
	if err := cur.Err(); err != nil {
		return nil, serrors.Wrap(serrors.ErrCodeConnection, err, "read %s.%s", s.Database, s.Collection)
	}

	s.Logger.Debug("read mongo documents", "documents", docs, "labels", ds.Len())
	return ds, nil
}
