package model

// WatchEntry is one row of a user's watch history, ordered by CreatedAt.
type WatchEntry struct {
	BaseModel
	UserID  uint64 `gorm:"not null;index"`
	VideoID uint64 `gorm:"not null"`

	Video Video `gorm:"foreignKey:VideoID"`
}

func (WatchEntry) TableName() string {
	return "watch_entries"
}
