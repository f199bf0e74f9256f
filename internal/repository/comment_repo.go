package repository

import (
	"clipstream/internal/model"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(comment *model.Comment) error
	FindByID(commentID uint64) (*model.Comment, error)
	ListByVideo(videoID uint64, offset, limit int) ([]model.Comment, int64, error)
	Update(commentID uint64, content string) (int64, error)
	Delete(commentID uint64) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(comment *model.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) FindByID(commentID uint64) (*model.Comment, error) {
	var result model.Comment
	err := r.db.Preload("Owner").First(&result, commentID).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListByVideo pages comments in natural store order and returns the total
// count for the pagination envelope.
func (r *commentRepository) ListByVideo(videoID uint64, offset, limit int) ([]model.Comment, int64, error) {
	q := r.db.Model(&model.Comment{}).Where("video_id = ?", videoID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []model.Comment
	err := q.
		Preload("Owner").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) Update(commentID uint64, content string) (int64, error) {
	res := r.db.Model(&model.Comment{}).Where("id = ?", commentID).Update("content", content)
	return res.RowsAffected, res.Error
}

func (r *commentRepository) Delete(commentID uint64) (int64, error) {
	res := r.db.Delete(&model.Comment{}, commentID)
	return res.RowsAffected, res.Error
}
