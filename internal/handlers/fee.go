package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/daybook-api/internal/dto"
	apierrors "github.com/yukikurage/daybook-api/internal/errors"
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/services"
	"github.com/yukikurage/daybook-api/internal/utils"
)

type FeeHandler struct {
	feeService *services.FeeService
}

func NewFeeHandler(feeService *services.FeeService) *FeeHandler {
	return &FeeHandler{feeService: feeService}
}

// ListFees returns payments, filtered by student_id when given
func (h *FeeHandler) ListFees(c *gin.Context) {
	var studentID *uint64
	if raw := c.Query("student_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid student_id")
			return
		}
		studentID = &id
	}

	params := utils.GetPaginationParams(c)
	fees, total, err := h.feeService.ListFees(studentID, params.Page, params.Limit)
	if err != nil {
		respondFeeError(c, err)
		return
	}

	respondList(c, http.StatusOK, "Fees fetched successfully", fees, params, total)
}

func (h *FeeHandler) GetFee(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "fee ID")
	if !ok {
		return
	}

	fee, err := h.feeService.GetFee(id)
	if err != nil {
		respondFeeError(c, err)
		return
	}

	respond(c, http.StatusOK, "Fee fetched successfully", fee)
}

func (h *FeeHandler) CreateFee(c *gin.Context) {
	type CreateFeeRequest struct {
		StudentID     uint64               `json:"studentId" binding:"required"`
		AmountPaid    *float64             `json:"amountPaid" binding:"required"`
		DueAmount     float64              `json:"dueAmount"`
		PaymentDate   *time.Time           `json:"paymentDate"`
		PaymentMethod models.PaymentMethod `json:"paymentMethod" binding:"required"`
	}

	var req CreateFeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	fee, err := h.feeService.CreateFee(services.CreateFeeInput{
		StudentID:     req.StudentID,
		AmountPaid:    *req.AmountPaid,
		DueAmount:     req.DueAmount,
		PaymentDate:   req.PaymentDate,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondFeeError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Fee recorded successfully", fee)
}

func (h *FeeHandler) DeleteFee(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "fee ID")
	if !ok {
		return
	}

	if err := h.feeService.DeleteFee(id); err != nil {
		respondFeeError(c, err)
		return
	}

	respond(c, http.StatusOK, "Fee deleted successfully", gin.H{"id": id})
}

// StudentFees returns a student's payments with totals
func (h *FeeHandler) StudentFees(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "student ID")
	if !ok {
		return
	}

	summary, err := h.feeService.StudentSummary(id)
	if err != nil {
		respondFeeError(c, err)
		return
	}

	respond(c, http.StatusOK, "Student fees fetched successfully", dto.ToFeeSummaryDTO(*summary))
}

func respondFeeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrStudentNotFound):
		apierrors.NotFound(c, "Student not found")
	case errors.Is(err, services.ErrFeeNotFound):
		apierrors.NotFound(c, "Fee not found")
	case errors.Is(err, services.ErrInvalidAmount), errors.Is(err, services.ErrInvalidPaymentMethod):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "", err)
	}
}
