package model

// User is both an account and a channel; subscriptions point at users.
// Username and email are stored lowercased, uniqueness lives in the database
// indexes rather than in find-then-create application logic.
type User struct {
	BaseModel
	Username     string `gorm:"uniqueIndex;size:64;not null"`
	Email        string `gorm:"uniqueIndex;size:128;not null"`
	FullName     string `gorm:"size:128;not null"`
	Password     string `gorm:"not null"` // bcrypt hash
	Avatar       string
	CoverImage   string
	RefreshToken string
}

func (User) TableName() string {
	return "users"
}
