package domain

// User matches the legacy USERS table. Only provisioning touches it here;
// credentials are checked by the fronting auth layer.
type User struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username string `gorm:"column:username;size:50;not null;uniqueIndex" json:"username"`
	Password string `gorm:"column:password;size:255;not null" json:"-"`
	Role     string `gorm:"column:role;size:20;not null;default:user" json:"role"`
}

// TableName overrides table name to USERS.
func (User) TableName() string {
	return "USERS"
}

// DefaultRole is assigned when a user row is created without one.
const DefaultRole = "user"
