package models

// User identifies a vehicle owner. Authentication lives outside this
// module; only the owner identity is needed here.
type User struct {
	ID        UUID   `db:"id" json:"id"`
	Email     string `db:"email" json:"email"`
	CreatedAt int64  `db:"created_at" json:"created_at"`
}

// TableName returns the table name for User.
func (User) TableName() string {
	return "users"
}
