package main

import (
	"os"

	"clipstream/internal/handler"
	"clipstream/internal/model"
	"clipstream/internal/repository"
	"clipstream/internal/router"
	"clipstream/internal/service"
	"clipstream/pkg/logger"
	"clipstream/pkg/rabbitmq"
	"clipstream/pkg/redis"
	"clipstream/pkg/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	// A missing .env is fine in containerized deployments.
	_ = godotenv.Load()
	logger.InitLogger()
	log := logger.Log

	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/clipstream?charset=utf8mb4&parseTime=True&loc=Local"
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Like{},
		&model.Tweet{},
		&model.Playlist{},
		&model.PlaylistVideo{},
		&model.Subscription{},
		&model.WatchEntry{},
	); err != nil {
		log.WithError(err).Fatal("database migration failed")
	}

	rdb, err := redis.InitRedis()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to redis")
	}

	mq, err := rabbitmq.InitRabbitMQ()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to rabbitmq")
	}
	defer mq.Close()

	assets, err := storage.NewMinioStore(storage.MinioConfig{
		Endpoint:  getenv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		SecretKey: os.Getenv("MINIO_SECRET_KEY"),
		Bucket:    getenv("MINIO_BUCKET", "clipstream"),
		UseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
	})
	if err != nil {
		log.WithError(err).Fatal("failed to initialize object storage")
	}

	views, err := service.NewViewPublisher(mq)
	if err != nil {
		log.WithError(err).Fatal("failed to declare view queue")
	}

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db, rdb)
	commentRepo := repository.NewCommentRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	tweetRepo := repository.NewTweetRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	subRepo := repository.NewSubscriptionRepository(db)

	userService := service.NewUserService(userRepo, subRepo, assets)
	videoService := service.NewVideoService(videoRepo, likeRepo, subRepo, assets, views)
	commentService := service.NewCommentService(commentRepo, videoRepo)
	likeService := service.NewLikeService(likeRepo, videoRepo, commentRepo, tweetRepo)
	tweetService := service.NewTweetService(tweetRepo)
	playlistService := service.NewPlaylistService(playlistRepo, videoRepo, userRepo)
	subService := service.NewSubscriptionService(subRepo, userRepo)

	r := router.SetupRouter(router.Handlers{
		User:         handler.NewUserHandler(userService),
		Video:        handler.NewVideoHandler(videoService),
		Comment:      handler.NewCommentHandler(commentService),
		Like:         handler.NewLikeHandler(likeService),
		Tweet:        handler.NewTweetHandler(tweetService),
		Playlist:     handler.NewPlaylistHandler(playlistService),
		Subscription: handler.NewSubscriptionHandler(subService),
	})

	addr := getenv("SERVER_ADDR", ":8080")
	log.WithField("addr", addr).Info("server starting")
	if err := r.Run(addr); err != nil {
		log.WithError(err).Fatal("server exited")
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
