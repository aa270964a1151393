package user

import "time"

const (
	RoleUser  = "user"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

type User struct {
	Id         int64     `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	Role       string    `json:"role"`
	JWTVersion uint      `json:"jwt_version"`
	CreatedAt  time.Time `json:"created_at"`
}

func (user *User) IsAdmin() bool {
	return user.Role == RoleAdmin
}
