package main

import (
	"encoding/json"
	"os"

	"clipstream/internal/data"
	"clipstream/internal/repository"
	"clipstream/internal/service"
	"clipstream/pkg/logger"
	"clipstream/pkg/rabbitmq"

	"github.com/joho/godotenv"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// The consumer drains the view queue: each message bumps the video's view
// counter and appends a watch history entry in one transaction.
func main() {
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

	mq, err := rabbitmq.InitRabbitMQ()
	if err != nil {
		log.WithError(err).Fatal("failed to connect to rabbitmq")
	}
	defer mq.Close()

	ch, err := mq.Channel()
	if err != nil {
		log.WithError(err).Fatal("failed to open channel")
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(service.QueueView, true, false, false, false, nil); err != nil {
		log.WithError(err).Fatal("failed to declare view queue")
	}

	// One unacked message at a time; view processing is cheap and ordering
	// per worker keeps the retry story simple.
	if err := ch.Qos(1, 0, false); err != nil {
		log.WithError(err).Fatal("failed to set qos")
	}

	msgs, err := ch.Consume(service.QueueView, "", false, false, false, false, nil)
	if err != nil {
		log.WithError(err).Fatal("failed to register consumer")
	}

	videoRepo := repository.NewVideoRepository(db, nil)
	userRepo := repository.NewUserRepository(db)
	uow := data.NewUnitOfWork(db, videoRepo, userRepo)

	forever := make(chan struct{})

	go func() {
		for d := range msgs {
			var msg service.ViewMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				log.WithError(err).Warn("dropping malformed view message")
				_ = d.Ack(false)
				continue
			}

			err := uow.Execute(func(repos *data.TransactionalRepositories) error {
				if err := repos.VideoRepo.IncrementViews(msg.VideoID); err != nil {
					return err
				}
				return repos.UserRepo.AddWatchEntry(msg.UserID, msg.VideoID)
			})
			if err != nil {
				log.WithError(err).
					WithField("video_id", msg.VideoID).
					Error("failed to process view event, requeueing")
				_ = d.Nack(false, true)
				continue
			}

			log.WithField("video_id", msg.VideoID).
				WithField("user_id", msg.UserID).
				Info("view event processed")
			_ = d.Ack(false)
		}
	}()

	log.Info("view consumer started, waiting for messages")
	<-forever
}
