package model

type Playlist struct {
	BaseModel
	OwnerID     uint64 `gorm:"not null;index"`
	Name        string `gorm:"size:128;not null"`
	Description string `gorm:"type:text"`

	Owner User `gorm:"foreignKey:OwnerID"`
}

func (Playlist) TableName() string {
	return "playlists"
}

// PlaylistVideo is one membership row. Position keeps insertion order and the
// composite unique index rejects duplicate entries at the store layer.
type PlaylistVideo struct {
	BaseModel
	PlaylistID uint64 `gorm:"not null;uniqueIndex:idx_playlist_video"`
	VideoID    uint64 `gorm:"not null;uniqueIndex:idx_playlist_video"`
	Position   int    `gorm:"not null"`

	Video Video `gorm:"foreignKey:VideoID"`
}

func (PlaylistVideo) TableName() string {
	return "playlist_videos"
}
