package domain

import "time"

// Role роль пользователя, выданная сервисом авторизации
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleClient Role = "client"
)

// Shop a salon location
type Shop struct {
	ID       int64
	Name     string
	Timezone string // IANA, например Europe/London
	IsActive bool
}

// Location loads the shop time zone
func (s *Shop) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// Service a bookable service of a shop
type Service struct {
	ID              int64
	ShopID          int64
	Name            string
	DurationMinutes int
	Price           float64
	IsActive        bool
}

// TeamMember a professional working at a shop
type TeamMember struct {
	ID       int64
	ShopID   int64
	Name     string
	IsActive bool
}

// Client a customer record linked to an auth user
type Client struct {
	ID     int64
	UserID string
	Name   string
	Phone  *string
	Email  *string
}

// Caller пользователь запроса, определённый сервисом авторизации
type Caller struct {
	UserID string
	Role   Role
}

// IsAdmin returns true for back office users
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
