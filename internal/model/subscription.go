package model

// Subscription: subscriber follows channel, both are users. One row per pair,
// enforced by the composite unique index.
type Subscription struct {
	BaseModel
	SubscriberID uint64 `gorm:"not null;uniqueIndex:idx_sub_channel"`
	ChannelID    uint64 `gorm:"not null;uniqueIndex:idx_sub_channel"`

	Subscriber User `gorm:"foreignKey:SubscriberID"`
	Channel    User `gorm:"foreignKey:ChannelID"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
