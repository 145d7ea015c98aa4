package service

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xlzd/gotp"

	"github.com/vcorps/corps-panel/database"
	"github.com/vcorps/corps-panel/database/model"
)

func setup() {
	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitDB(dbPath)
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
	os.Remove("test.db-wal")
	os.Remove("test.db-shm")
}

func newTestUser(id, email, password string) *model.User {
	return &model.User{
		Id:                 id,
		FullName:           "Jane Doe",
		WorkNumber:         "RC-VOL-001",
		Email:              email,
		PhoneNumber:        "+254 700 000000",
		Role:               model.RoleVolunteer,
		MembershipType:     model.MembershipOrdinary,
		Password:           password,
		Status:             model.StatusActive,
		MustChangePassword: true,
		CreatedAt:          "2026-01-15",
		CreatedBy:          "System Administrator",
	}
}

func TestSeedAdminLogin(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}

	user := service.CheckUser("admin@redcross.org", "admin123", "")
	if assert.NotNil(t, user) {
		assert.Equal(t, model.RoleAdmin, user.Role)
		assert.False(t, user.MustChangePassword)
	}

	assert.Nil(t, service.CheckUser("admin@redcross.org", "wrong", ""))
}

func TestFindByCredentialsExactMatch(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	err := service.AddUser(newTestUser("u1", "jane@redcross.org", "Secret#1"))
	assert.NoError(t, err)

	assert.NotNil(t, service.FindByCredentials("jane@redcross.org", "Secret#1"))

	// both fields are compared case-sensitively
	assert.Nil(t, service.FindByCredentials("Jane@redcross.org", "Secret#1"))
	assert.Nil(t, service.FindByCredentials("jane@redcross.org", "secret#1"))
	assert.Nil(t, service.FindByCredentials("jane@redcross.org", ""))
}

func TestRegisterRoundTrip(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	u := newTestUser("u1", "jane@redcross.org", "Secret#1")
	assert.NoError(t, service.AddUser(u))

	users, err := service.GetUsers()
	assert.NoError(t, err)
	// seed admin plus the new user, in insertion order
	assert.Len(t, users, 2)
	assert.Equal(t, "u1", users[1].Id)
	assert.True(t, users[1].MustChangePassword)

	logged := service.CheckUser(u.Email, u.Password, "")
	if assert.NotNil(t, logged) {
		assert.Equal(t, u.Id, logged.Id)
	}
}

func TestUpdateUserFullReplace(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	u := newTestUser("u1", "jane@redcross.org", "Secret#1")
	assert.NoError(t, service.AddUser(u))

	u.Role = model.RoleStaff
	u.MembershipType = model.MembershipLife
	u.Status = model.StatusInactive
	u.MustChangePassword = false
	assert.NoError(t, service.UpdateUser(u))

	stored, err := service.GetUser("u1")
	assert.NoError(t, err)
	assert.Equal(t, model.RoleStaff, stored.Role)
	assert.Equal(t, model.MembershipLife, stored.MembershipType)
	assert.Equal(t, model.StatusInactive, stored.Status)
	assert.False(t, stored.MustChangePassword)
}

func TestUpdateUserAbsentIdIsNoop(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	ghost := newTestUser("nope", "ghost@redcross.org", "Secret#1")
	assert.NoError(t, service.UpdateUser(ghost))

	_, err := service.GetUser("nope")
	assert.True(t, database.IsNotFound(err))
}

func TestDeleteUser(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	assert.NoError(t, service.AddUser(newTestUser("u1", "jane@redcross.org", "Secret#1")))

	assert.NoError(t, service.DeleteUser("u1"))
	_, err := service.GetUser("u1")
	assert.True(t, database.IsNotFound(err))

	// deleting an absent id is a no-op
	assert.NoError(t, service.DeleteUser("u1"))
}

func TestSetPasswordClearsMustChange(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	assert.NoError(t, service.AddUser(newTestUser("u1", "jane@redcross.org", "Secret#1")))

	assert.NoError(t, service.SetPassword("u1", "NewSecret1"))

	stored, err := service.GetUser("u1")
	assert.NoError(t, err)
	assert.Equal(t, "NewSecret1", stored.Password)
	assert.False(t, stored.MustChangePassword)
}

func TestChangePasswordValidation(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	assert.NoError(t, service.AddUser(newTestUser("u1", "jane@redcross.org", "Secret#1")))

	tests := []struct {
		name     string
		current  string
		new      string
		confirm  string
		expected error
	}{
		{"wrong current password", "nope", "NewSecret1", "NewSecret1", ErrIncorrectCurrentPassword},
		{"too short", "Secret#1", "abc12", "abc12", ErrPasswordTooShort},
		{"confirmation mismatch", "Secret#1", "NewSecret1", "NewSecret2", ErrPasswordMismatch},
		// current-password check runs first
		{"wrong current and too short", "nope", "abc", "abc", ErrIncorrectCurrentPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.ChangePassword("u1", tt.current, tt.new, tt.confirm)
			assert.True(t, errors.Is(err, tt.expected), "expected %v, got %v", tt.expected, err)

			// a failing check mutates nothing
			stored, err := service.GetUser("u1")
			assert.NoError(t, err)
			assert.Equal(t, "Secret#1", stored.Password)
			assert.True(t, stored.MustChangePassword)
		})
	}

	assert.NoError(t, service.ChangePassword("u1", "Secret#1", "NewSecret1", "NewSecret1"))
	stored, err := service.GetUser("u1")
	assert.NoError(t, err)
	assert.Equal(t, "NewSecret1", stored.Password)
	assert.False(t, stored.MustChangePassword)
}

func TestChangePasswordAbsentIdIsNoop(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	assert.NoError(t, service.ChangePassword("nope", "a", "b", "c"))
}

func TestInactiveUserLogin(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	u := newTestUser("u1", "jane@redcross.org", "Secret#1")
	u.Status = model.StatusInactive
	assert.NoError(t, service.AddUser(u))

	// permissive by default: inactive users still authenticate
	assert.NotNil(t, service.CheckUser(u.Email, u.Password, ""))

	settingService := SettingService{}
	assert.NoError(t, settingService.SetLoginRequireActive(true))
	assert.Nil(t, service.CheckUser(u.Email, u.Password, ""))

	assert.NoError(t, settingService.SetLoginRequireActive(false))
	assert.NotNil(t, service.CheckUser(u.Email, u.Password, ""))
}

func TestTwoFactorLogin(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	settingService := SettingService{}

	token := gotp.RandomSecret(16)
	assert.NoError(t, settingService.SetTwoFactorEnable(true))
	assert.NoError(t, settingService.SetTwoFactorToken(token))

	assert.Nil(t, service.CheckUser("admin@redcross.org", "admin123", ""))
	assert.Nil(t, service.CheckUser("admin@redcross.org", "admin123", "000000"))

	code := gotp.NewDefaultTOTP(token).Now()
	assert.NotNil(t, service.CheckUser("admin@redcross.org", "admin123", code))
}

func TestUpdateFirstUser(t *testing.T) {
	setup()
	defer teardown()

	service := UserService{}
	assert.NoError(t, service.UpdateFirstUser("root@redcross.org", "changed1"))

	first, err := service.GetFirstUser()
	assert.NoError(t, err)
	assert.Equal(t, "root@redcross.org", first.Email)
	assert.Equal(t, "changed1", first.Password)
}
