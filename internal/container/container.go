// Package container holds the process-wide clients main builds, so the router
// can assemble modules without threading every dependency through by hand.
package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hrms/config"
	"github.com/oksasatya/go-hrms/pkg/helpers"
)

// Core is what the API cannot start without.
type Core struct {
	Config *config.Config
	Logger *logrus.Logger
	Pool   *pgxpool.Pool
	Redis  *redis.Client
	JWT    *helpers.JWTManager
}

var (
	core Core

	// optional, nil until main manages to connect
	gcsClient *storage.Client
	esClient  *elasticsearch.Client
	rabbitPub *helpers.RabbitPublisher
)

func Init(c Core) { core = c }

func GetConfig() *config.Config   { return core.Config }
func GetLogger() *logrus.Logger   { return core.Logger }
func GetPGPool() *pgxpool.Pool    { return core.Pool }
func GetRedis() *redis.Client     { return core.Redis }
func GetJWT() *helpers.JWTManager { return core.JWT }

func SetGCS(c *storage.Client) { gcsClient = c }
func GetGCS() *storage.Client  { return gcsClient }

func SetES(c *elasticsearch.Client) { esClient = c }
func GetES() *elasticsearch.Client  { return esClient }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
