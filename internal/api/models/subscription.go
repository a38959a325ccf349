package models

import "time"

// Subscription records that follower is subscribed to author.
// The pair is unique and author may never equal follower.
type Subscription struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	AuthorID   int64     `json:"author_id" gorm:"uniqueIndex:idx_author_follower;not null"`
	FollowerID int64     `json:"follower_id" gorm:"uniqueIndex:idx_author_follower;not null"`
	CreatedAt  time.Time `json:"created_at"`

	Author   *User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Follower *User `json:"follower,omitempty" gorm:"foreignKey:FollowerID"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
