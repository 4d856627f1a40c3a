package models

import "time"

// User represents a registered customer.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Email     string    `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Password  string    `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never serialized
	Name      string    `json:"name,omitempty" gorm:"type:varchar(255)"`
	Avatar    string    `json:"avatar,omitempty" gorm:"type:varchar(512)"`
	Phone     string    `json:"phone,omitempty" gorm:"type:varchar(64)"`
	Address   string    `json:"address,omitempty" gorm:"type:text"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Profile is the public view of a user returned by the API and cached by clients.
type Profile struct {
	ID      string `json:"id,omitempty"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Profile returns the public view of the user.
func (u *User) Profile() Profile {
	return Profile{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Avatar:  u.Avatar,
		Phone:   u.Phone,
		Address: u.Address,
	}
}

// ProfileUpdate carries the profile fields a user may change. Nil fields are left untouched.
type ProfileUpdate struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Avatar  *string `json:"avatar,omitempty" validate:"omitempty,max=512"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=64"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=1024"`
}

// Empty reports whether the update changes nothing.
func (p ProfileUpdate) Empty() bool {
	return p.Name == nil && p.Avatar == nil && p.Phone == nil && p.Address == nil
}
