package main

import (
	"fmt"
	"math/rand"
	"os"

	"clipstream/internal/model"
	"clipstream/pkg/logger"

	"github.com/go-faker/faker/v4"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const (
	seedUsers            = 20
	seedVideosPerUser    = 5
	seedCommentsPerVideo = 3
)

// The seeder fills a development database with fake users, videos and
// comments. Every seeded user's password is "password123".
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

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Fatal("failed to hash seed password")
	}

	users := make([]model.User, 0, seedUsers)
	for i := 0; i < seedUsers; i++ {
		user := model.User{
			Username: fmt.Sprintf("%s%d", faker.Username(), i),
			Email:    fmt.Sprintf("%d_%s", i, faker.Email()),
			FullName: faker.Name(),
			Password: string(hashed),
			Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%d", i),
		}
		if err := db.Create(&user).Error; err != nil {
			log.WithError(err).Fatal("failed to seed user")
		}
		users = append(users, user)
	}
	log.WithField("count", len(users)).Info("seeded users")

	videos := make([]model.Video, 0, seedUsers*seedVideosPerUser)
	for _, user := range users {
		for i := 0; i < seedVideosPerUser; i++ {
			video := model.Video{
				OwnerID:     user.ID,
				Title:       faker.Sentence(),
				Description: faker.Paragraph(),
				VideoURL:    fmt.Sprintf("https://cdn.example.com/videos/%s.mp4", faker.UUIDDigit()),
				Thumbnail:   fmt.Sprintf("https://cdn.example.com/thumbs/%s.jpg", faker.UUIDDigit()),
				Duration:    float64(rand.Intn(3600)) + rand.Float64(),
				Views:       uint64(rand.Intn(100000)),
				IsPublished: true,
			}
			if err := db.Create(&video).Error; err != nil {
				log.WithError(err).Fatal("failed to seed video")
			}
			videos = append(videos, video)
		}
	}
	log.WithField("count", len(videos)).Info("seeded videos")

	commentCount := 0
	for _, video := range videos {
		for i := 0; i < seedCommentsPerVideo; i++ {
			commenter := users[rand.Intn(len(users))]
			comment := model.Comment{
				VideoID: video.ID,
				OwnerID: commenter.ID,
				Content: faker.Sentence(),
			}
			if err := db.Create(&comment).Error; err != nil {
				log.WithError(err).Fatal("failed to seed comment")
			}
			commentCount++
		}
	}
	log.WithField("count", commentCount).Info("seeded comments")

	log.Info("seeding complete")
}
