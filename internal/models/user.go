package models

import (
	"time"

	"gorm.io/gorm"
)

// PushSubscription is the device registration a user hands over to receive
// reminder pushes.
type PushSubscription struct {
	Token        string    `json:"token"`
	Device       string    `json:"device,omitempty"`
	SubscribedAt time.Time `json:"subscribedAt"`
}

type User struct {
	ID               uint64            `gorm:"primarykey" json:"id"`
	Email            string            `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash     string            `gorm:"type:varchar(255);not null" json:"-"`
	PushSubscription *PushSubscription `gorm:"serializer:json;type:text" json:"-"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
	DeletedAt        gorm.DeletedAt    `gorm:"index" json:"-"`

	// Relations
	Todos []Todo `gorm:"foreignKey:UserID" json:"-"`
}

// HasPushSubscription reports whether pushes can be delivered to the user.
func (u User) HasPushSubscription() bool {
	return u.PushSubscription != nil && u.PushSubscription.Token != ""
}
