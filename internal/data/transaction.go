package data

import (
	"clipstream/internal/repository"

	"gorm.io/gorm"
)

// UnitOfWork wraps a function in one database transaction and hands it
// repositories bound to that transaction.
type UnitOfWork interface {
	Execute(func(repos *TransactionalRepositories) error) error
}

// TransactionalRepositories holds the repositories the view-event consumer
// mutates together: the video (view counter) and the user (watch history).
type TransactionalRepositories struct {
	VideoRepo repository.VideoRepository
	UserRepo  repository.UserRepository
}

type gormUnitOfWork struct {
	db        *gorm.DB
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
}

// NewUnitOfWork takes the raw, non-transactional repositories; Execute swaps
// in transaction-bound copies per invocation.
func NewUnitOfWork(db *gorm.DB, videoRepo repository.VideoRepository, userRepo repository.UserRepository) UnitOfWork {
	return &gormUnitOfWork{
		db:        db,
		videoRepo: videoRepo,
		userRepo:  userRepo,
	}
}

func (u *gormUnitOfWork) Execute(fn func(repos *TransactionalRepositories) error) error {
	return u.db.Transaction(func(tx *gorm.DB) error {
		repos := &TransactionalRepositories{
			VideoRepo: u.videoRepo.WithTx(tx),
			UserRepo:  u.userRepo.WithTx(tx),
		}
		return fn(repos)
	})
}
