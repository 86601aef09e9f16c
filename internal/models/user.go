package models

import "time"

type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Phone        string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"phone"`
	PasswordHash string    `gorm:"type:varchar(100);not null" json:"-"`
	Name         string    `gorm:"type:varchar(128);not null" json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string { return "users" }

// UserView is the public shape of a user. The password hash never leaves the server.
type UserView struct {
	ID        string    `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) View() UserView {
	return UserView{
		ID:        u.ID,
		Phone:     u.Phone,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
