package model

// Role names. Reference data seeded once, referenced by foreign key from users.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAuthor     = "AUTHER"
)

// Role represents a named role in the role master table.
type Role struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:100;not null"`
}

// TableName keeps the historical table name.
func (Role) TableName() string {
	return "role_master"
}
