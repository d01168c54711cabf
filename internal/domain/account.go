package domain

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Role         Role
	LastLoggedIn *time.Time
}

type Customer struct {
	ID        int64
	UserID    int64
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

func (c Customer) FullName() string { return c.FirstName + " " + c.LastName }

type CustomerSignup struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}
