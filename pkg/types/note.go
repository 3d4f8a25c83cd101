package types

import "github.com/lib/pq"

type Note struct {
	ID         string         `json:"id" db:"id"`
	UserID     string         `json:"user_id" db:"user_id"`
	Name       string         `json:"name" db:"name"`
	CourseCode string         `json:"course_code" db:"course_code"`
	CourseName string         `json:"course_name" db:"course_name"`
	Files      pq.StringArray `json:"files" db:"files"`
	CreatedAt  int64          `json:"created_at" db:"created_at"`
	UpdatedAt  int64          `json:"updated_at" db:"updated_at"`
}
