package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"restaurant/database"
	"restaurant/model"
)

// SessionLifetime is the absolute lifetime of an issued session token.
const SessionLifetime = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionExpired     = errors.New("session expired or not found")
	ErrForbidden          = errors.New("insufficient permissions")
	ErrLastSuperAdmin     = errors.New("the last super admin cannot be deleted")
)

// Authenticate verifies an email/password pair against the stored bcrypt hash
// and issues a fresh session. Absent user, inactive user and wrong password
// are indistinguishable to the caller.
func Authenticate(email, password string) (*model.Session, *model.AdminUser, error) {
	var user model.AdminUser
	if err := database.DB.Where("email = ? AND is_active = ?", email, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	session := model.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(SessionLifetime),
	}
	if err := database.DB.Create(&session).Error; err != nil {
		return nil, nil, err
	}

	now := time.Now()
	if err := database.DB.Model(&user).Update("last_login", now).Error; err != nil {
		return nil, nil, err
	}
	user.LastLogin = &now

	return &session, &user, nil
}

// Validate resolves a session token to its user. A token only resolves while
// expires_at is still in the future. Side-effect free.
func Validate(token string) (*model.AdminUser, error) {
	if token == "" {
		return nil, ErrSessionExpired
	}

	var user model.AdminUser
	err := database.DB.
		Joins("JOIN user_sessions ON user_sessions.user_id = admin_users.id").
		Where("user_sessions.id = ? AND user_sessions.expires_at > ?", token, time.Now()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}
	return &user, nil
}

// Revoke deletes the session row. Revoking an unknown token is not an error.
func Revoke(token string) error {
	return database.DB.Delete(&model.Session{}, "id = ?", token).Error
}

// Authorize composes Validate with a role check. super_admin satisfies every
// requirement admin does; the reverse does not hold. With no roles given any
// valid session passes.
func Authorize(token string, roles ...model.UserRole) (*model.AdminUser, error) {
	user, err := Validate(token)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return user, nil
	}
	for _, role := range roles {
		if user.Role == role {
			return user, nil
		}
		if role == model.RoleAdmin && user.Role == model.RoleSuperAdmin {
			return user, nil
		}
	}
	return nil, ErrForbidden
}

// DeleteUser removes an admin account and its sessions. Deleting the last
// remaining super_admin is refused so the system always keeps one.
func DeleteUser(id uint) error {
	var user model.AdminUser
	if err := database.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	if user.Role == model.RoleSuperAdmin {
		var count int64
		if err := database.DB.Model(&model.AdminUser{}).Where("role = ?", model.RoleSuperAdmin).Count(&count).Error; err != nil {
			return err
		}
		if count <= 1 {
			return ErrLastSuperAdmin
		}
	}

	if err := database.DB.Delete(&model.AdminUser{}, id).Error; err != nil {
		return err
	}
	// Emulated cascade for stores without foreign key enforcement.
	return database.DB.Delete(&model.Session{}, "user_id = ?", id).Error
}
