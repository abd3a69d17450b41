package model

import "time"

// User represents an author or administrator account.
// Email and phone are unique at the storage layer; the pre-insert existence
// checks in the service are advisory only.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	RoleID       uint      `json:"-" gorm:"index"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255"`
	FullName     string    `json:"full_name" gorm:"size:50;index"`
	Phone        string    `json:"phone" gorm:"uniqueIndex;size:10"`
	Address      string    `json:"address" gorm:"type:text"`
	City         string    `json:"city" gorm:"size:255"`
	State        string    `json:"state" gorm:"size:255"`
	Country      string    `json:"country" gorm:"size:255"`
	Pincode      string    `json:"pincode" gorm:"size:6"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	IsAuthor     bool      `json:"is_auther" gorm:"default:false"`
	IsSuperuser  bool      `json:"is_superuser" gorm:"default:false"`
	IsStaff      bool      `json:"is_staff" gorm:"default:true"`
	IsActive     bool      `json:"is_active" gorm:"default:true;index"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Relations
	Role Role `json:"role" gorm:"foreignKey:RoleID"`
}

// TableName keeps the historical table name.
func (User) TableName() string {
	return "user_details"
}
