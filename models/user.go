package models

import "github.com/uptrace/bun"

// Roles an account can hold.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is an API account with bcrypt-hashed password.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       int    `bun:"id,pk,autoincrement" json:"id"`
	Username string `bun:"username,notnull,unique" json:"username"`
	Email    string `bun:"email,notnull,unique" json:"email"`
	Password string `bun:"password,notnull" json:"-"`
	Role     string `bun:"role,notnull" json:"role"`
}
