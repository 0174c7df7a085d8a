package models

import "time"

type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodUPI  PaymentMethod = "upi"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodUPI
}

type Fee struct {
	ID            uint64        `gorm:"primarykey" json:"id"`
	StudentID     uint64        `gorm:"not null;index" json:"studentId"`
	AmountPaid    float64       `gorm:"not null" json:"amountPaid"`
	DueAmount     float64       `gorm:"not null;default:0" json:"dueAmount"`
	PaymentDate   time.Time     `gorm:"not null;index" json:"paymentDate"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(10);not null" json:"paymentMethod"`
	CreatedAt     time.Time     `json:"createdAt"`

	// Relations
	Student Student `gorm:"foreignKey:StudentID" json:"-"`
}
