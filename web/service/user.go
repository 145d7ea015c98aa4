package service

import (
	"errors"

	"github.com/xlzd/gotp"

	"github.com/vcorps/corps-panel/database"
	"github.com/vcorps/corps-panel/database/model"
	"github.com/vcorps/corps-panel/logger"
)

// Closed outcome taxonomy for directory and credential operations. Every
// failure is recovered at the boundary and surfaced to the user; nothing here
// is fatal.
var (
	ErrInvalidCredentials       = errors.New("wrong email or password")
	ErrIncorrectCurrentPassword = errors.New("current password is incorrect")
	ErrPasswordTooShort         = errors.New("new password must be at least 6 characters")
	ErrPasswordMismatch         = errors.New("passwords do not match")
	ErrSelfDeletionForbidden    = errors.New("cannot delete your own account")
	ErrMissingGeneratedPassword = errors.New("a generated password is required")
)

const minPasswordLength = 6

// UserService owns the directory of registered users. Credentials are
// compared as exact case-sensitive strings against the stored record.
type UserService struct {
	settingService SettingService
}

// GetFirstUser returns the oldest record in the directory, normally the seed
// admin. Used by the CLI recovery path.
func (s *UserService) GetFirstUser() (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).Order("rowid").First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateFirstUser resets the first user's email and password from the CLI.
// Empty values keep the stored ones.
func (s *UserService) UpdateFirstUser(email string, password string) error {
	user, err := s.GetFirstUser()
	if err != nil {
		return err
	}
	if email != "" {
		user.Email = email
	}
	if password != "" {
		user.Password = password
	}
	db := database.GetDB()
	return db.Save(user).Error
}

// GetUsers returns all registered users in insertion order.
func (s *UserService) GetUsers() ([]model.User, error) {
	db := database.GetDB()

	var users []model.User
	err := db.Model(model.User{}).Order("rowid").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) GetUser(id string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).Where("id = ?", id).First(user).Error
	if err != nil {
		return nil, err
	}
	return user, nil
}

// FindByCredentials returns the user whose email and password both match the
// given values exactly, or nil when no record matches.
func (s *UserService) FindByCredentials(email string, password string) *model.User {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Where("email = ? AND password = ?", email, password).
		First(user).
		Error
	if err == nil {
		return user
	}
	if !database.IsNotFound(err) {
		logger.Warning("find by credentials err:", err)
	}
	return nil
}

// CheckUser authenticates a login attempt. Inactive users are allowed in
// unless the loginRequireActive setting is on; the permissive behavior is the
// documented default.
func (s *UserService) CheckUser(email string, password string, twoFactorCode string) *model.User {
	user := s.FindByCredentials(email, password)
	if user == nil {
		return nil
	}

	requireActive, err := s.settingService.GetLoginRequireActive()
	if err != nil {
		logger.Warning("check login require active err:", err)
		return nil
	}
	if requireActive && user.Status != model.StatusActive {
		return nil
	}

	twoFactorEnable, err := s.settingService.GetTwoFactorEnable()
	if err != nil {
		logger.Warning("check two factor err:", err)
		return nil
	}

	if twoFactorEnable {
		twoFactorToken, err := s.settingService.GetTwoFactorToken()
		if err != nil {
			logger.Warning("check two factor token err:", err)
			return nil
		}

		if gotp.NewDefaultTOTP(twoFactorToken).Now() != twoFactorCode {
			return nil
		}
	}

	return user
}

// AddUser inserts a new user. The caller supplies the complete record,
// identifier and generated password included.
func (s *UserService) AddUser(user *model.User) error {
	db := database.GetDB()
	return db.Create(user).Error
}

// UpdateUser replaces the stored record matching the identifier in full.
// Absent identifiers are a no-op.
func (s *UserService) UpdateUser(user *model.User) error {
	db := database.GetDB()

	var count int64
	if err := db.Model(model.User{}).Where("id = ?", user.Id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	return db.Save(user).Error
}

// DeleteUser removes the record. Absent identifiers are a no-op. The
// caller-must-not-delete-its-own-session rule is enforced at the controller
// boundary, not here.
func (s *UserService) DeleteUser(id string) error {
	db := database.GetDB()
	return db.Delete(&model.User{}, "id = ?", id).Error
}

// SetPassword replaces the password and clears the must-change flag on the
// matching record. Absent identifiers are a no-op.
func (s *UserService) SetPassword(id string, newPassword string) error {
	db := database.GetDB()
	return db.Model(model.User{}).
		Where("id = ?", id).
		Updates(map[string]any{"password": newPassword, "must_change_password": false}).
		Error
}

// ChangePassword validates and applies a password change for the given user.
// Checks run in order: current password equality, minimum length,
// confirmation match. A failing check mutates nothing.
func (s *UserService) ChangePassword(id string, currentPassword string, newPassword string, confirmPassword string) error {
	user, err := s.GetUser(id)
	if database.IsNotFound(err) {
		return nil
	} else if err != nil {
		return err
	}

	if currentPassword != user.Password {
		return ErrIncorrectCurrentPassword
	}
	if len(newPassword) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	return s.SetPassword(id, newPassword)
}
