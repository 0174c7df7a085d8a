package models

import "time"

type Notification struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"userId"`
	TodoID    *uint64   `gorm:"index" json:"todoId,omitempty"`
	Title     string    `gorm:"type:varchar(255);not null" json:"title"`
	Body      string    `gorm:"type:text" json:"body"`
	Date      time.Time `gorm:"not null;index" json:"date"`
	Read      bool      `gorm:"column:is_read;not null;default:false" json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}
