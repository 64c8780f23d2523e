package mongo

import (
	"context"
	"sync"
	"time"

	"github.com/airenas/interviewcoach/internal/pkg/cmdapp"
	"github.com/airenas/interviewcoach/internal/pkg/utils"
	"github.com/cenkalti/backoff"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

//IndexData keeps index creation data
type IndexData struct {
	Table  string
	Fields []string
	Unique bool
}

func newIndexData(table string, fields []string, unique bool) IndexData {
	return IndexData{Table: table, Fields: fields, Unique: unique}
}

//SessionProvider connects and provides collections for mongo DB
type SessionProvider struct {
	client         *mongo.Client
	URL            string
	Database       string
	Timeout        time.Duration
	ConnectTimeout time.Duration
	indexes        []IndexData
	m              sync.Mutex // struct field mutex
}

//NewSessionProvider creates Mongo session provider from config
func NewSessionProvider() (*SessionProvider, error) {
	url := cmdapp.Config.GetString("mongo.url")
	if url == "" {
		url = defaultURL
	}
	db := cmdapp.Config.GetString("mongo.database")
	if db == "" {
		db = defaultDatabase
	}
	res := &SessionProvider{URL: url, Database: db, indexes: indexData}
	res.Timeout = durationOr(cmdapp.Config.GetDuration("mongo.timeout"), 10*time.Second)
	res.ConnectTimeout = durationOr(cmdapp.Config.GetDuration("mongo.connectTimeout"), 30*time.Second)
	return res, nil
}

//Connect dials mongo retrying with exponential backoff until ConnectTimeout passes
func (sp *SessionProvider) Connect(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = sp.ConnectTimeout
	op := func() error {
		_, err := sp.getClient(ctx)
		if err != nil {
			cmdapp.Log.Warnf("Can't connect to mongo: %v", err)
		}
		return err
	}
	return backoff.Retry(op, backoff.WithContext(b, ctx))
}

//Close closes mongo client
func (sp *SessionProvider) Close() {
	sp.m.Lock()
	defer sp.m.Unlock()

	if sp.client != nil {
		ctx, cancel := context.WithTimeout(context.Background(), sp.Timeout)
		defer cancel()
		cmdapp.LogIf(sp.client.Disconnect(ctx))
		sp.client = nil
	}
}

//Healthy pings the server
func (sp *SessionProvider) Healthy() error {
	ctx, cancel := context.WithTimeout(context.Background(), sp.Timeout)
	defer cancel()
	c, err := sp.getClient(ctx)
	if err != nil {
		return err
	}
	return errors.Wrap(c.Ping(ctx, readpref.Primary()), "can't ping mongo")
}

//Collection returns the table with majority write concern
func (sp *SessionProvider) Collection(ctx context.Context, table string) (*mongo.Collection, error) {
	c, err := sp.getClient(ctx)
	if err != nil {
		return nil, err
	}
	return c.Database(sp.Database).Collection(table,
		options.Collection().SetWriteConcern(writeconcern.New(writeconcern.WMajority()))), nil
}

func (sp *SessionProvider) getClient(ctx context.Context) (*mongo.Client, error) {
	sp.m.Lock()
	defer sp.m.Unlock()

	if sp.client != nil {
		return sp.client, nil
	}
	cmdapp.Log.Info("Dial mongo: " + utils.URLToLog(sp.URL))
	cCtx, cancel := context.WithTimeout(ctx, sp.Timeout)
	defer cancel()
	client, err := mongo.Connect(cCtx, options.Client().ApplyURI(sp.URL))
	if err != nil {
		return nil, errors.Wrap(err, "can't dial to mongo")
	}
	err = client.Ping(cCtx, readpref.Primary())
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "can't ping mongo")
	}
	err = checkIndexes(cCtx, client.Database(sp.Database), sp.indexes)
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	sp.client = client
	return sp.client, nil
}

func checkIndexes(ctx context.Context, db *mongo.Database, indexes []IndexData) error {
	for _, index := range indexes {
		err := checkIndex(ctx, db, index)
		if err != nil {
			return errors.Wrapf(err, "can't create index: %s:%v", index.Table, index.Fields)
		}
	}
	return nil
}

func checkIndex(ctx context.Context, db *mongo.Database, indexData IndexData) error {
	keys := bson.D{}
	for _, f := range indexData.Fields {
		keys = append(keys, bson.E{Key: f, Value: 1})
	}
	_, err := db.Collection(indexData.Table).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    keys,
		Options: options.Index().SetUnique(indexData.Unique).SetBackground(true),
	})
	return err
}

func durationOr(d, def time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return def
}
