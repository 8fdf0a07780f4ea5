package models

// Course is a plain CRUD entity owned by the backend.
type Course struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Code     string   `json:"code"`
	Semester string   `json:"semester"`
	Year     int      `json:"year"`
	IsActive bool     `json:"isActive"`
	Students []string `json:"students"`
}

// CourseInput is sent to the backend when creating or updating a course.
type CourseInput struct {
	Name     string   `json:"name"`
	Code     string   `json:"code"`
	Semester string   `json:"semester"`
	Year     int      `json:"year"`
	IsActive bool     `json:"isActive"`
	Students []string `json:"students"`
}
