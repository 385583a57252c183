package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"catalog-backend/internal/config"
	infraCache "catalog-backend/internal/infrastructure/cache"
	"catalog-backend/internal/infrastructure/database"
	"catalog-backend/internal/infrastructure/queue"
	"catalog-backend/internal/infrastructure/storage"
	"catalog-backend/pkg/cache"
	"catalog-backend/pkg/jwt"

	"catalog-backend/internal/domains/category"
	categoryHandler "catalog-backend/internal/domains/category/handler"
	categoryRepo "catalog-backend/internal/domains/category/repository"
	categoryService "catalog-backend/internal/domains/category/service"
	"catalog-backend/internal/domains/provider"
	providerHandler "catalog-backend/internal/domains/provider/handler"
	providerRepo "catalog-backend/internal/domains/provider/repository"
	providerService "catalog-backend/internal/domains/provider/service"
	"catalog-backend/internal/domains/subcategory"
	subcategoryHandler "catalog-backend/internal/domains/subcategory/handler"
	subcategoryRepo "catalog-backend/internal/domains/subcategory/repository"
	subcategoryService "catalog-backend/internal/domains/subcategory/service"
	"catalog-backend/internal/domains/user"
	userHandler "catalog-backend/internal/domains/user/handler"
	userRepo "catalog-backend/internal/domains/user/repository"
	userService "catalog-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Everything in it is
// a singleton created once at startup, in dependency order.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Queue      *queue.Client
	Uploader   storage.Uploader
	Processor  *storage.ImageProcessor
	JWTManager *jwt.Manager

	CategoryRepo    category.Repository
	SubCategoryRepo subcategory.Repository
	ProviderRepo    provider.Repository
	UserRepo        user.Repository

	CategoryService    category.Service
	SubCategoryService subcategory.Service
	ProviderService    provider.Service
	UserService        user.Service

	CategoryHandler    *categoryHandler.CategoryHandler
	SubCategoryHandler *subcategoryHandler.SubCategoryHandler
	ProviderHandler    *providerHandler.ProviderHandler
	UserHandler        *userHandler.UserHandler
}

// NewContainer builds the whole graph: config, then infrastructure,
// then repositories, services and handlers. Order matters.
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	log.Println("📋 Loading configuration...")
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	log.Println("🗄️  Connecting to PostgreSQL...")
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Println("✅ Database connected")

	log.Println("🔴 Connecting to Redis...")
	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			// cache misses fall through to Postgres, so keep going
			log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
		} else {
			log.Println("✅ Redis connected")
		}
	}
	c.Cache = redisCache

	c.Queue = queue.NewClient(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	log.Printf("🖼️  Initializing image storage (driver: %s)...", cfg.Storage.Driver)
	uploader, err := newUploader(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to init storage: %w", err)
	}
	c.Uploader = uploader
	c.Processor = storage.NewImageProcessor()

	log.Println("📦 Initializing repositories...")
	c.initRepositories()

	log.Println("⚙️  Initializing services...")
	c.initServices()

	log.Println("🎯 Initializing handlers...")
	c.initHandlers()

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

func newUploader(cfg *config.Config) (storage.Uploader, error) {
	switch cfg.Storage.Driver {
	case "minio":
		return storage.NewMinIOStorage(cfg.MinIO)
	default:
		return storage.NewCloudinaryStorage(cfg.Cloudinary)
	}
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CategoryRepo = categoryRepo.NewPostgresRepository(pool)
	c.SubCategoryRepo = subcategoryRepo.NewPostgresRepository(pool)
	c.ProviderRepo = providerRepo.NewProviderRepository(pool)
	c.UserRepo = userRepo.NewUserRepository(pool)
}

func (c *Container) initServices() {
	c.CategoryService = categoryService.NewCategoryService(c.CategoryRepo, c.Cache, c.Queue)
	c.SubCategoryService = subcategoryService.NewSubCategoryService(c.SubCategoryRepo, c.Cache, c.Queue)
	c.ProviderService = providerService.NewProviderService(
		c.ProviderRepo,
		c.Uploader,
		c.Processor,
		c.Queue,
		c.Config.Storage.UploadFolder,
	)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
}

func (c *Container) initHandlers() {
	c.CategoryHandler = categoryHandler.NewCategoryHandler(c.CategoryService)
	c.SubCategoryHandler = subcategoryHandler.NewSubCategoryHandler(c.SubCategoryService)
	c.ProviderHandler = providerHandler.NewProviderHandler(c.ProviderService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
}

// Cleanup releases infrastructure resources during shutdown.
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.Queue != nil {
		if err := c.Queue.Close(); err != nil {
			log.Printf("⚠️  Failed to close queue client: %v", err)
		} else {
			log.Println("✅ Queue client closed")
		}
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("⚠️  Failed to close Redis: %v", err)
			} else {
				log.Println("✅ Redis connections closed")
			}
		}
	}

	if c.DB != nil && c.DB.Pool != nil {
		c.DB.Pool.Close()
		log.Println("✅ Database connections closed")
	}

	log.Println("✅ Container cleanup completed")
}
