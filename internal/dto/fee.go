package dto

import (
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/services"
)

// FeeSummaryDTO is a student's payment record with totals
type FeeSummaryDTO struct {
	Student     models.Student `json:"student"`
	Fees        []models.Fee   `json:"fees"`
	TotalPaid   float64        `json:"totalPaid"`
	Outstanding float64        `json:"outstanding"`
}

// ToFeeSummaryDTO converts a fee summary
func ToFeeSummaryDTO(s services.FeeSummary) FeeSummaryDTO {
	fees := s.Fees
	if fees == nil {
		fees = []models.Fee{}
	}
	return FeeSummaryDTO{
		Student:     s.Student,
		Fees:        fees,
		TotalPaid:   s.TotalPaid,
		Outstanding: s.Outstanding,
	}
}
