package di

import (
	"context"
	"log"

	goredis "github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"

	"checkin-server/config"
	"checkin-server/dao/redis"
	"checkin-server/db"
	"checkin-server/flow"
	"checkin-server/server"
	"checkin-server/server/handlers"
	services "checkin-server/service"
	"checkin-server/spatial"
	"checkin-server/store"
	"checkin-server/temporal"
)

// Container holds all application dependencies.
type Container struct {
	Store              *store.Store
	SpatialIndex       *spatial.Index
	Aggregator         *temporal.Aggregator
	FlowAnalyzer       *flow.Analyzer
	RedisClient        db.RedisClient
	QueryCache         *redis.RedisQueryCache
	QueryService       *services.QueryService
	IndexWarmupService *services.IndexWarmupService
	AnalyticsHandler   *handlers.AnalyticsHandler
	MuxRouter          *mux.Router
	Router             *server.Router
	CheckinHttpServer  *server.CheckinHttpServer
}

// NewContainer initializes and wires up all dependencies over the loaded
// check-in store.
func NewContainer(checkinStore *store.Store) *Container {
	log.Printf("initializing container - %d check-ins", checkinStore.Len())

	// Analytical components read only from the store.
	spatialIndex := spatial.NewIndex(checkinStore)
	aggregator := temporal.NewAggregator(checkinStore)
	flowAnalyzer := flow.NewAnalyzer(checkinStore)

	// The redis query cache is optional: when redis is unreachable the
	// service recomputes every query.
	ctx := context.Background()
	var redisClient db.RedisClient
	var queryCache *redis.RedisQueryCache

	redisInternalClient := goredis.NewClient(&goredis.Options{
		Addr:     config.GetRedisAddress(),
		Password: config.REDIS_DB_PASSWORD,
		DB:       config.REDIS_DB,
	})
	candidate := db.NewKVRedisClient(ctx, redisInternalClient)
	if err := candidate.Ping(); err != nil {
		log.Printf("Redis unreachable (%v), query cache disabled", err)
	} else {
		log.Println("Connected to Redis, query cache enabled")
		redisClient = candidate
		queryCache = redis.NewRedisQueryCache(redisClient)
	}

	queryService := services.NewQueryService(spatialIndex, aggregator, flowAnalyzer, queryCache)
	indexWarmupService := services.NewIndexWarmupService(spatialIndex, aggregator)

	analyticsHandler := handlers.NewAnalyticsHandler(queryService)

	muxRouter := mux.NewRouter()
	router := server.NewRouter(analyticsHandler, muxRouter)
	checkinHttpServer := server.NewCheckinHttpServer(router, muxRouter, config.GetServerAddress())

	return &Container{
		Store:              checkinStore,
		SpatialIndex:       spatialIndex,
		Aggregator:         aggregator,
		FlowAnalyzer:       flowAnalyzer,
		RedisClient:        redisClient,
		QueryCache:         queryCache,
		QueryService:       queryService,
		IndexWarmupService: indexWarmupService,
		AnalyticsHandler:   analyticsHandler,
		MuxRouter:          muxRouter,
		Router:             router,
		CheckinHttpServer:  checkinHttpServer,
	}
}
