package persistence

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongo.Database is a concrete type, so the accessor is checked against a
// client that never connects.
func TestMongoDB_Database(t *testing.T) {
	client, _ := mongo.Connect(context.TODO(), options.Client().ApplyURI("mongodb://localhost:27017"))
	database := client.Database("stock_tracking_test")

	mdb := &MongoDB{
		logger:   slog.New(slog.NewJSONHandler(os.Stdout, nil)),
		database: database,
	}

	assert.Equal(t, database, mdb.Database())
}
