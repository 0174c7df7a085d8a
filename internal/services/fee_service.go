package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrFeeNotFound          = errors.New("fee not found")
	ErrInvalidAmount        = errors.New("amounts must not be negative")
	ErrInvalidPaymentMethod = errors.New("payment method must be cash or upi")
)

// FeeService handles fee payment records
type FeeService struct {
	feeRepo     repository.FeeRepository
	studentRepo repository.StudentRepository
	now         func() time.Time
}

// NewFeeService creates a new FeeService
func NewFeeService(feeRepo repository.FeeRepository, studentRepo repository.StudentRepository) *FeeService {
	return &FeeService{
		feeRepo:     feeRepo,
		studentRepo: studentRepo,
		now:         time.Now,
	}
}

// CreateFeeInput represents input for recording a payment
type CreateFeeInput struct {
	StudentID     uint64
	AmountPaid    float64
	DueAmount     float64
	PaymentDate   *time.Time
	PaymentMethod models.PaymentMethod
}

// FeeSummary aggregates the payments of one student
type FeeSummary struct {
	Student     models.Student
	Fees        []models.Fee
	TotalPaid   float64
	Outstanding float64
}

// CreateFee records a payment for an active student
func (s *FeeService) CreateFee(input CreateFeeInput) (*models.Fee, error) {
	if input.AmountPaid < 0 || input.DueAmount < 0 {
		return nil, ErrInvalidAmount
	}
	if !input.PaymentMethod.Valid() {
		return nil, ErrInvalidPaymentMethod
	}

	if _, err := s.studentRepo.FindByID(input.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}

	paymentDate := s.now().UTC()
	if input.PaymentDate != nil && !input.PaymentDate.IsZero() {
		paymentDate = input.PaymentDate.UTC()
	}

	fee := &models.Fee{
		StudentID:     input.StudentID,
		AmountPaid:    input.AmountPaid,
		DueAmount:     input.DueAmount,
		PaymentDate:   paymentDate,
		PaymentMethod: input.PaymentMethod,
	}
	if err := s.feeRepo.Create(fee); err != nil {
		return nil, fmt.Errorf("failed to create fee: %w", err)
	}
	return fee, nil
}

// ListFees returns payments, optionally for one student
func (s *FeeService) ListFees(studentID *uint64, page, pageSize int) ([]models.Fee, int64, error) {
	fees, total, err := s.feeRepo.List(repository.FeeFilter{
		StudentID: studentID,
		Page:      page,
		PageSize:  pageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list fees: %w", err)
	}
	return fees, total, nil
}

// GetFee returns a single payment
func (s *FeeService) GetFee(id uint64) (*models.Fee, error) {
	fee, err := s.feeRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeeNotFound
		}
		return nil, fmt.Errorf("failed to find fee: %w", err)
	}
	return fee, nil
}

// DeleteFee removes a payment record
func (s *FeeService) DeleteFee(id uint64) error {
	fee, err := s.GetFee(id)
	if err != nil {
		return err
	}
	if err := s.feeRepo.Delete(fee.ID); err != nil {
		return fmt.Errorf("failed to delete fee: %w", err)
	}
	return nil
}

// StudentSummary totals a student's payments. Outstanding is the due amount
// recorded with the most recent payment.
func (s *FeeService) StudentSummary(studentID uint64) (*FeeSummary, error) {
	student, err := s.studentRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}

	fees, err := s.feeRepo.ListByStudent(studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fees: %w", err)
	}

	summary := &FeeSummary{Student: *student, Fees: fees}
	for _, f := range fees {
		summary.TotalPaid += f.AmountPaid
	}
	if len(fees) > 0 {
		summary.Outstanding = fees[0].DueAmount
	}
	return summary, nil
}
