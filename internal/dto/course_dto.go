package dto

import "github.com/gradepro/gradepro-web/internal/models"

// CourseCreateRequest describes a new course.
type CourseCreateRequest struct {
	Name     string   `json:"name" validate:"required,min=2,max=200"`
	Code     string   `json:"code" validate:"required,min=2,max=20"`
	Semester string   `json:"semester" validate:"required,max=40"`
	Year     int      `json:"year" validate:"required,gte=2000,lte=2100"`
	IsActive *bool    `json:"is_active"`
	Students []string `json:"students" validate:"omitempty,dive,required"`
}

// CourseUpdateRequest changes the supplied course fields only.
type CourseUpdateRequest struct {
	Name     *string   `json:"name" validate:"omitempty,min=2,max=200"`
	Code     *string   `json:"code" validate:"omitempty,min=2,max=20"`
	Semester *string   `json:"semester" validate:"omitempty,max=40"`
	Year     *int      `json:"year" validate:"omitempty,gte=2000,lte=2100"`
	IsActive *bool     `json:"is_active"`
	Students *[]string `json:"students" validate:"omitempty,dive,required"`
}

// CourseResponse is the serialized course.
type CourseResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Code         string   `json:"code"`
	Semester     string   `json:"semester"`
	Year         int      `json:"year"`
	IsActive     bool     `json:"is_active"`
	Students     []string `json:"students"`
	StudentCount int      `json:"student_count"`
}

// NewCourseResponse converts a backend course.
func NewCourseResponse(model models.Course) CourseResponse {
	students := model.Students
	if students == nil {
		students = []string{}
	}

	return CourseResponse{
		ID:           model.ID,
		Name:         model.Name,
		Code:         model.Code,
		Semester:     model.Semester,
		Year:         model.Year,
		IsActive:     model.IsActive,
		Students:     students,
		StudentCount: len(students),
	}
}

// NewCourseResponseSlice converts backend courses.
func NewCourseResponseSlice(courses []models.Course) []CourseResponse {
	responses := make([]CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, NewCourseResponse(course))
	}
	return responses
}
