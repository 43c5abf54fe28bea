package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/satriadivo/goshop/config"
	"github.com/satriadivo/goshop/pkg/helpers"
)

// Process-wide singletons populated by cmd/main before the router wires its
// modules. Optional infrastructure (Rabbit, Elasticsearch) may stay nil; the
// services degrade gracefully around it.
type deps struct {
	cfg    *config.Config
	logger *logrus.Logger
	mongo  *mongo.Database
	redis  *redis.Client
	gcs    *storage.Client
	jwt    *helpers.JWTManager
	rabbit *helpers.RabbitPublisher
	es     *elasticsearch.Client
}

var c deps

func SetConfig(v *config.Config) { c.cfg = v }

func GetConfig() *config.Config { return c.cfg }

func SetLogger(v *logrus.Logger) { c.logger = v }

func GetLogger() *logrus.Logger { return c.logger }

func SetMongo(v *mongo.Database) { c.mongo = v }

func GetMongo() *mongo.Database { return c.mongo }

func SetRedis(v *redis.Client) { c.redis = v }

func GetRedis() *redis.Client { return c.redis }

func SetGCS(v *storage.Client) { c.gcs = v }

func GetGCS() *storage.Client { return c.gcs }

func SetJWT(v *helpers.JWTManager) { c.jwt = v }

func SetRabbitPub(v *helpers.RabbitPublisher) { c.rabbit = v }

func GetRabbitPub() *helpers.RabbitPublisher { return c.rabbit }

func SetES(v *elasticsearch.Client) { c.es = v }

func GetES() *elasticsearch.Client { return c.es }

func GetJWT() *helpers.JWTManager {
	if c.jwt != nil {
		return c.jwt
	}
	return helpers.DefaultJWT()
}
