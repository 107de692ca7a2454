package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/qmaze/api"
	api_i "github.com/beka-birhanu/qmaze/api/i"
	"github.com/beka-birhanu/qmaze/api/identity"
	mazeapi "github.com/beka-birhanu/qmaze/api/maze"
	"github.com/beka-birhanu/qmaze/config"
	logger "github.com/beka-birhanu/qmaze/infrastruture/log"
	"github.com/beka-birhanu/qmaze/infrastruture/repo"
	"github.com/beka-birhanu/qmaze/infrastruture/sortedstorage"
	"github.com/beka-birhanu/qmaze/infrastruture/token"
	"github.com/beka-birhanu/qmaze/service"
	"github.com/beka-birhanu/qmaze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stored mazes and the maze pool over HTTP",
	Run:   runServe,
}

// Global variables for dependencies
var (
	envs           config.Config
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	mazeRepo       *repo.MazeRepo
	sortedQueue    i.SortedQueue
	mazePool       i.MazeService
	jwtTokenizer   i.Tokenizer
	mazeController api_i.Controller
	router         *api.Router
	appLogger      i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", envs.DBUser, envs.DBPassword, envs.DBHost, envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initMazeRepo(ctx context.Context, client *mongo.Client) {
	mazeRepo = repo.NewMazeRepo(client, envs.DBName, "mazes")
	if err := mazeRepo.EnsureIndexes(ctx); err != nil {
		appLogger.Warning(fmt.Sprintf("Creating maze indexes: %v", err))
	}
	appLogger.Info("Maze repository initialized")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     envs.RedisAddr,
		Password: envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	sortedQueue = sortedstorage.NewRedisSortedQueue(redisClient, envs.PoolTTLSeconds)
	appLogger.Info("Connected to Redis")
}

func initMazePool() {
	poolLogger, err := logger.New("MAZE-POOL", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze pool logger: %v", err))
		os.Exit(1)
	}

	mazePool, err = service.NewMazePool(mazeRepo, sortedQueue, poolLogger, &service.PoolOptions{
		RefillSize: envs.PoolSize,
		Workers:    envs.MazeWorkers,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze pool: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze pool initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazeapi.NewMazeController(mazePool)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initJWTTokenizer() {
	var err error
	jwtTokenizer, err = token.NewJwtService(envs.JWTSecret, envs.JWTIssuer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating JWT tokenizer: %v", err))
		os.Exit(1)
	}
	appLogger.Info("JWT Tokenizer initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", envs.HostIP, envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func runServe(_ *cobra.Command, _ []string) {
	var err error
	appLogger, err = logger.New("APP", config.ColorGreen, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	envs = config.Load()
	gin.SetMode(envs.GinMode)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initMazeRepo(ctx, mongoClient)
	initRedis(ctx)
	defer redisClient.Close()

	initMazePool()
	initMazeController()
	initJWTTokenizer()
	initRouter(jwtTokenizer)

	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
