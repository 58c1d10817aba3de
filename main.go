package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/qmaze-api/api"
	api_i "github.com/beka-birhanu/qmaze-api/api/i"
	"github.com/beka-birhanu/qmaze-api/api/identity"
	mazesapi "github.com/beka-birhanu/qmaze-api/api/mazes"
	"github.com/beka-birhanu/qmaze-api/config"
	"github.com/beka-birhanu/qmaze-api/infrastruture/repo"
	"github.com/beka-birhanu/qmaze-api/logging"
	"github.com/beka-birhanu/qmaze-api/infrastruture/sortedstorage"
	"github.com/beka-birhanu/qmaze-api/infrastruture/token"
	"github.com/beka-birhanu/qmaze-api/service"
	"github.com/beka-birhanu/qmaze-api/service/i"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient    *mongo.Client
	redisClient    *redis.Client
	userRepo       i.UserRepo
	mazeRepo       i.MazeRepo
	sortedQueue    i.SortedQueue
	curator        i.Curator
	mazeService    i.MazeService
	jwtTokenizer   i.Tokenizer
	authService    i.Authenticator
	authController api_i.Controller
	mazeController api_i.Controller
	router         *api.Router
	appLogger      *logrus.Entry
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Errorf("Failed to connect to MongoDB: %v", err)
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Errorf("MongoDB ping failed: %v", err)
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Errorf("Redis ping failed: %v", err)
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRepos(client *mongo.Client) {
	userRepo = repo.NewUserRepo(client, config.Envs.DBName, "users")
	mazeRepo = repo.NewMazeRepo(client, config.Envs.DBName, "mazes")
	appLogger.Info("Repositories initialized")
}

func initCurator() {
	var err error
	sortedQueue, err = sortedstorage.NewRedisSortedQueue(redisClient, config.Envs.QueueTTLSeconds)
	if err != nil {
		appLogger.Errorf("Creating sorted queue: %v", err)
		os.Exit(1)
	}

	curator, err = service.NewMazeCurator(sortedQueue, mazeRepo, logging.NewLogger("CURATOR"), "")
	if err != nil {
		appLogger.Errorf("Creating maze curator: %v", err)
		os.Exit(1)
	}
	appLogger.Info("Maze curator initialized")
}

func initMazeService() {
	var err error
	mazeService, err = service.NewMazeGenerationService(&service.GenerationConfig{
		MazeRepo:  mazeRepo,
		Curator:   curator,
		UserRepo:  userRepo,
		Logger:    logging.NewLogger("GENERATOR"),
		ReportDir: config.Envs.ReportDir,
	})
	if err != nil {
		appLogger.Errorf("Creating maze generation service: %v", err)
		os.Exit(1)
	}
	appLogger.Info("Maze generation service initialized")
}

func initMazeController() {
	var err error
	mazeController, err = mazesapi.NewMazeController(mazeService, curator)
	if err != nil {
		appLogger.Errorf("Creating maze controller: %v", err)
		os.Exit(1)
	}
	appLogger.Info("Maze controller initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
	if err != nil {
		appLogger.Errorf("Creating auth service: %v", err)
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initAuthController() {
	authController = identity.NewIdentityServer(authService)
	appLogger.Info("Auth controller initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger = logging.NewLogger("APP")

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(ctx)
	}()

	initRedis(ctx)
	defer func() {
		_ = redisClient.Close()
	}()

	initRepos(mongoClient)
	initCurator()
	initMazeService()
	initMazeController()
	initJWTTokenizer()
	initAuthService()
	initAuthController()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Errorf("Starting server: %v", err)
		os.Exit(1)
	}
}
