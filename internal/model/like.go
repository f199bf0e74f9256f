package model

// Target kinds a like can point at. A tagged reference instead of three
// nullable foreign keys, so a row always has exactly one target.
const (
	LikeTargetVideo   = "video"
	LikeTargetComment = "comment"
	LikeTargetTweet   = "tweet"
)

// Like relates a user to one video, comment or tweet. The composite unique
// index guarantees at most one like per (user, target) pair, even under
// concurrent toggles.
type Like struct {
	BaseModel
	LikeByID   uint64 `gorm:"not null;uniqueIndex:idx_like_target"`
	TargetKind string `gorm:"size:16;not null;uniqueIndex:idx_like_target"`
	TargetID   uint64 `gorm:"not null;uniqueIndex:idx_like_target"`
}

func (Like) TableName() string {
	return "likes"
}
