package model

// Video metadata. The media itself lives in object storage; VideoURL and
// Thumbnail are the durable URLs returned by the asset store.
type Video struct {
	BaseModel
	OwnerID     uint64 `gorm:"not null;index"` // immutable after creation
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	VideoURL    string `gorm:"not null"`
	Thumbnail   string `gorm:"not null"`
	Duration    float64
	Views       uint64 `gorm:"default:0"`
	IsPublished bool   `gorm:"default:true"`

	Owner User `gorm:"foreignKey:OwnerID;references:ID"`
}

func (Video) TableName() string {
	return "videos"
}
