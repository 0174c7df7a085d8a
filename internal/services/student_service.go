package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/daybook-api/internal/models"
	"github.com/yukikurage/daybook-api/internal/repository"
	"gorm.io/gorm"
)

const (
	minStudentAge = 1
	maxStudentAge = 120
)

var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrStudentNameTaken   = errors.New("a student with this name already exists")
	ErrStudentNotDeleted  = errors.New("student is not deleted")
	ErrNameRequired       = errors.New("name is required")
	ErrClassRequired      = errors.New("class is required")
	ErrInvalidAge         = errors.New("age must be between 1 and 120")
	ErrInvalidBatch       = errors.New("batch must be one of 4pm-6pm, 5pm-7pm")
	ErrInvalidStudentSort = errors.New("invalid sort field")
)

// RestorableStudentError reports a name clash with a soft-deleted student
// that can be restored instead of re-created.
type RestorableStudentError struct {
	StudentID uint64
}

func (e *RestorableStudentError) Error() string {
	return fmt.Sprintf("a deleted student with this name exists (id %d) and can be restored", e.StudentID)
}

// Is lets callers match the error with ErrStudentNameTaken.
func (e *RestorableStudentError) Is(target error) bool {
	return target == ErrStudentNameTaken
}

// StudentService handles student business logic
type StudentService struct {
	studentRepo repository.StudentRepository
}

// NewStudentService creates a new StudentService
func NewStudentService(studentRepo repository.StudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

// StudentInput holds the editable student fields
type StudentInput struct {
	Name  string
	Age   int
	Class string
	Batch models.Batch
}

// ListStudentsInput represents filters for listing students
type ListStudentsInput struct {
	Batch    *models.Batch
	Query    string
	SortBy   string
	Page     int
	PageSize int
}

func (in *StudentInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Class = strings.TrimSpace(in.Class)
	if in.Name == "" {
		return ErrNameRequired
	}
	if in.Class == "" {
		return ErrClassRequired
	}
	if in.Age < minStudentAge || in.Age > maxStudentAge {
		return ErrInvalidAge
	}
	if !in.Batch.Valid() {
		return ErrInvalidBatch
	}
	return nil
}

// ListStudents returns students matching the filters
func (s *StudentService) ListStudents(input ListStudentsInput) ([]models.Student, int64, error) {
	if input.Batch != nil && !input.Batch.Valid() {
		return nil, 0, ErrInvalidBatch
	}
	if input.SortBy != "" && input.SortBy != "name" && input.SortBy != "created_date" {
		return nil, 0, ErrInvalidStudentSort
	}

	students, total, err := s.studentRepo.List(repository.StudentFilter{
		Batch:    input.Batch,
		Query:    strings.TrimSpace(input.Query),
		SortBy:   input.SortBy,
		Page:     input.Page,
		PageSize: input.PageSize,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list students: %w", err)
	}
	return students, total, nil
}

// GetStudent returns an active student
func (s *StudentService) GetStudent(id uint64) (*models.Student, error) {
	student, err := s.studentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}
	return student, nil
}

// CreateStudent registers a student. Names are unique among active students;
// a clash with a deleted student yields a RestorableStudentError.
func (s *StudentService) CreateStudent(input StudentInput) (*models.Student, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	if err := s.ensureNameAvailable(input.Name, 0); err != nil {
		return nil, err
	}

	deleted, err := s.studentRepo.FindDeletedByName(input.Name)
	if err == nil {
		return nil, &RestorableStudentError{StudentID: deleted.ID}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check deleted students: %w", err)
	}

	student := &models.Student{
		Name:  input.Name,
		Age:   input.Age,
		Class: input.Class,
		Batch: input.Batch,
	}
	if err := s.studentRepo.Create(student); err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}
	return student, nil
}

// UpdateStudent replaces the editable fields of an active student
func (s *StudentService) UpdateStudent(id uint64, input StudentInput) (*models.Student, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	student, err := s.GetStudent(id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureNameAvailable(input.Name, student.ID); err != nil {
		return nil, err
	}

	student.Name = input.Name
	student.Age = input.Age
	student.Class = input.Class
	student.Batch = input.Batch
	if err := s.studentRepo.Update(student); err != nil {
		return nil, fmt.Errorf("failed to update student: %w", err)
	}
	return student, nil
}

// DeleteStudent soft deletes a student; fee records are kept
func (s *StudentService) DeleteStudent(id uint64) error {
	student, err := s.GetStudent(id)
	if err != nil {
		return err
	}
	if err := s.studentRepo.Delete(student.ID); err != nil {
		return fmt.Errorf("failed to delete student: %w", err)
	}
	return nil
}

// RestoreStudent undeletes a soft-deleted student
func (s *StudentService) RestoreStudent(id uint64) (*models.Student, error) {
	deleted, err := s.studentRepo.FindDeletedByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if _, activeErr := s.studentRepo.FindByID(id); activeErr == nil {
				return nil, ErrStudentNotDeleted
			}
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}

	if err := s.ensureNameAvailable(deleted.Name, 0); err != nil {
		return nil, err
	}

	if err := s.studentRepo.Restore(deleted.ID); err != nil {
		return nil, fmt.Errorf("failed to restore student: %w", err)
	}
	return s.GetStudent(deleted.ID)
}

// ensureNameAvailable fails when an active student other than exceptID uses name
func (s *StudentService) ensureNameAvailable(name string, exceptID uint64) error {
	existing, err := s.studentRepo.FindByName(name)
	if err == nil {
		if existing.ID != exceptID {
			return ErrStudentNameTaken
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check student name: %w", err)
	}
	return nil
}
