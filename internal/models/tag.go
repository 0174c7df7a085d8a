package models

import "time"

type Tag struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Tag       string    `gorm:"type:varchar(50);not null;uniqueIndex:idx_tags_tag_user" json:"tag"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_tags_tag_user" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}
