package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	ROLE_USER  = "user"
	ROLE_STAFF = "staff"
)

// User is an account. Staff members may moderate comments; everything
// else is owner-only.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"type:varchar(150);uniqueIndex" json:"username" validate:"required,min=3,max=150"`
	Email     string         `gorm:"type:varchar(255);uniqueIndex" json:"email" validate:"required,email"`
	Password  string         `gorm:"type:varchar(255)" json:"-" validate:"required,min=8"`
	FirstName string         `gorm:"type:varchar(150)" json:"first_name"`
	LastName  string         `gorm:"type:varchar(150)" json:"last_name"`
	Role      string         `gorm:"type:varchar(20);default:user" json:"role"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()
	return v.Struct(u)
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsStaff reports whether the account carries the staff role.
func (u *User) IsStaff() bool {
	return u.Role == ROLE_STAFF
}

// CreateUser builds a validated user with a hashed password.
func CreateUser(username, email, password string) (*User, error) {
	user := &User{
		Username: username,
		Email:    email,
		Password: password,
		Role:     ROLE_USER,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	return user, nil
}

// HashPassword hashes the given password with bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash
func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// SetPassword hashes and stores the given password on the user.
func (u *User) SetPassword(password string) error {
	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	u.Password = hash
	return nil
}

// CheckPassword compares the given plaintext password with the stored hash.
func (u *User) CheckPassword(password string) bool {
	return CheckPasswordHash(password, u.Password)
}
