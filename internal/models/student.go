package models

import (
	"time"

	"gorm.io/gorm"
)

type Batch string

const (
	Batch4To6 Batch = "4pm-6pm"
	Batch5To7 Batch = "5pm-7pm"
)

func (b Batch) Valid() bool {
	return b == Batch4To6 || b == Batch5To7
}

type Student struct {
	ID        uint64         `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"type:varchar(255);not null;index" json:"name"`
	Age       int            `gorm:"not null" json:"age"`
	Class     string         `gorm:"type:varchar(50);not null" json:"class"`
	Batch     Batch          `gorm:"type:varchar(10);not null" json:"batch"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Fees []Fee `gorm:"foreignKey:StudentID" json:"-"`
}
