package types

type Course struct {
	ID        string `json:"id" db:"id"`
	Code      string `json:"code" db:"code"`
	Name      string `json:"name" db:"name"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}

type CourseSubscription struct {
	UserID    string `json:"user_id" db:"user_id"`
	CourseID  string `json:"course_id" db:"course_id"`
	CreatedAt int64  `json:"created_at" db:"created_at"`
}
