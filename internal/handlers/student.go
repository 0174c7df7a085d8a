package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/daybook-api/internal/errors"
	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/services"
	"github.com/yukikurage/daybook-api/internal/utils"
)

type StudentHandler struct {
	studentService *services.StudentService
}

func NewStudentHandler(studentService *services.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

type studentRequest struct {
	Name  string       `json:"name" binding:"required"`
	Age   int          `json:"age" binding:"required"`
	Class string       `json:"class" binding:"required"`
	Batch models.Batch `json:"batch" binding:"required"`
}

func (r studentRequest) input() services.StudentInput {
	return services.StudentInput{
		Name:  r.Name,
		Age:   r.Age,
		Class: r.Class,
		Batch: r.Batch,
	}
}

// ListStudents returns students, optionally filtered by batch
func (h *StudentHandler) ListStudents(c *gin.Context) {
	h.list(c, "")
}

// SearchStudents matches name and class
func (h *StudentHandler) SearchStudents(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		apierrors.BadRequest(c, "q is required")
		return
	}
	h.list(c, q)
}

func (h *StudentHandler) list(c *gin.Context, query string) {
	params := utils.GetPaginationParams(c)
	input := services.ListStudentsInput{
		Query:    query,
		SortBy:   c.Query("sort"),
		Page:     params.Page,
		PageSize: params.Limit,
	}
	if batch := c.Query("batch"); batch != "" {
		b := models.Batch(batch)
		input.Batch = &b
	}

	students, total, err := h.studentService.ListStudents(input)
	if err != nil {
		respondStudentError(c, err)
		return
	}

	respondList(c, http.StatusOK, "Students fetched successfully", students, params, total)
}

func (h *StudentHandler) GetStudent(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "student ID")
	if !ok {
		return
	}

	student, err := h.studentService.GetStudent(id)
	if err != nil {
		respondStudentError(c, err)
		return
	}

	respond(c, http.StatusOK, "Student fetched successfully", student)
}

func (h *StudentHandler) CreateStudent(c *gin.Context) {
	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	student, err := h.studentService.CreateStudent(req.input())
	if err != nil {
		respondStudentError(c, err)
		return
	}

	respond(c, http.StatusCreated, "Student created successfully", student)
}

func (h *StudentHandler) UpdateStudent(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "student ID")
	if !ok {
		return
	}

	var req studentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BindingError(c, err)
		return
	}

	student, err := h.studentService.UpdateStudent(id, req.input())
	if err != nil {
		respondStudentError(c, err)
		return
	}

	respond(c, http.StatusOK, "Student updated successfully", student)
}

func (h *StudentHandler) DeleteStudent(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "student ID")
	if !ok {
		return
	}

	if err := h.studentService.DeleteStudent(id); err != nil {
		respondStudentError(c, err)
		return
	}

	respond(c, http.StatusOK, "Student deleted successfully", gin.H{"id": id})
}

// RestoreStudent undeletes a soft-deleted student
func (h *StudentHandler) RestoreStudent(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "student ID")
	if !ok {
		return
	}

	student, err := h.studentService.RestoreStudent(id)
	if err != nil {
		respondStudentError(c, err)
		return
	}

	respond(c, http.StatusOK, "Student restored successfully", student)
}

func respondStudentError(c *gin.Context, err error) {
	var restorable *services.RestorableStudentError
	switch {
	case errors.As(err, &restorable):
		apierrors.ConflictWithDetails(c, "A deleted student with this name exists", gin.H{
			"student_id": restorable.StudentID,
			"restorable": true,
		})
	case errors.Is(err, services.ErrStudentNameTaken):
		apierrors.Conflict(c, "A student with this name already exists")
	case errors.Is(err, services.ErrStudentNotDeleted):
		apierrors.Conflict(c, "Student is not deleted")
	case errors.Is(err, services.ErrStudentNotFound):
		apierrors.NotFound(c, "Student not found")
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrClassRequired),
		errors.Is(err, services.ErrInvalidAge),
		errors.Is(err, services.ErrInvalidBatch),
		errors.Is(err, services.ErrInvalidStudentSort):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "", err)
	}
}
