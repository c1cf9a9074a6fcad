package models

// Student defines the student model based on the 'students' table
type Student struct {
	ID         int64  `json:"id" db:"id" example:"1"`
	UserID     int64  `json:"userId" db:"user_id" example:"5"`
	Identifier string `json:"identifier" db:"identifier" example:"20210001"` // student number
}
