package models

import "time"

type Playlist struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	UserID    uint64    `gorm:"not null;index" json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Songs []Song `gorm:"many2many:playlist_songs;" json:"songs,omitempty"`
}
