package entities

// Role is the access level of a staff account.
type Role string

const (
	RoleGuest Role = "GUEST" // Virtual: unauthenticated callers, never stored
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// IsPersistable reports whether accounts may be stored with this role.
func (r Role) IsPersistable() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Login        string `gorm:"uniqueIndex;size:100;not null" json:"login"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         Role   `gorm:"size:10;not null" json:"role"`
}

func NewUser(login, passwordHash string, role Role) *User {
	return &User{Login: login, PasswordHash: passwordHash, Role: role}
}

func (User) TableName() string {
	return "users"
}
