package models

// Instructor defines the instructor model based on the 'instructors' table
type Instructor struct {
	ID         int64  `json:"id" db:"id" example:"1"`
	UserID     int64  `json:"userId" db:"user_id" example:"5"`
	Department string `json:"department" db:"department" example:"Computer Engineering"`
	Title      string `json:"title" db:"title" example:"Associate Professor"`
}
