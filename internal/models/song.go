package models

import (
	"time"

	"gorm.io/gorm"
)

type Song struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Title     string         `gorm:"type:varchar(255);not null;index" json:"title"`
	Artist    string         `gorm:"type:varchar(255);not null;index" json:"artist"`
	Album     string         `gorm:"type:varchar(255)" json:"album"`
	Genre     string         `gorm:"type:varchar(100);index" json:"genre"`
	Duration  int            `gorm:"not null;default:0" json:"duration"`
	CoverArt  string         `gorm:"type:varchar(512)" json:"coverArt"`
	Filename  string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"filename"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// PlayHistory is an append-only log of plays.
type PlayHistory struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"userId"`
	SongID    uint64    `gorm:"not null;index" json:"songId"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	// Relations
	Song Song `gorm:"foreignKey:SongID" json:"song,omitempty"`
}

type Favorite struct {
	UserID    uint64    `gorm:"primarykey" json:"userId"`
	SongID    uint64    `gorm:"primarykey" json:"songId"`
	CreatedAt time.Time `json:"createdAt"`

	// Relations
	Song Song `gorm:"foreignKey:SongID" json:"song,omitempty"`
}
