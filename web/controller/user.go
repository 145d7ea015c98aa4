package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vcorps/corps-panel/database"
	"github.com/vcorps/corps-panel/database/model"
	"github.com/vcorps/corps-panel/logger"
	"github.com/vcorps/corps-panel/util/random"
	"github.com/vcorps/corps-panel/web/middleware"
	"github.com/vcorps/corps-panel/web/service"
	"github.com/vcorps/corps-panel/web/session"
)

const (
	userIdLength            = 9
	generatedPasswordLength = 12
)

// UserForm carries a complete user record across the API boundary. Stored
// records never expose their password, so the form is a separate type.
type UserForm struct {
	Id             string `json:"id" form:"id"`
	FullName       string `json:"fullName" form:"fullName"`
	WorkNumber     string `json:"workNumber" form:"workNumber"`
	Email          string `json:"email" form:"email"`
	PhoneNumber    string `json:"phoneNumber" form:"phoneNumber"`
	Role           string `json:"role" form:"role"`
	MembershipType string `json:"membershipType" form:"membershipType"`
	Password       string `json:"password" form:"password"`
	Status         string `json:"status" form:"status"`
}

// ChangePasswordForm carries a password-change request.
type ChangePasswordForm struct {
	CurrentPassword string `json:"currentPassword" form:"currentPassword"`
	NewPassword     string `json:"newPassword" form:"newPassword"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

// UserController handles user registration, updates, deletion, role
// assignment and password changes.
type UserController struct {
	BaseController

	userService service.UserService
}

// NewUserController creates a new UserController and initializes its routes.
// The password change route stays outside the admin group: every role may
// change its own password.
func NewUserController(g *gin.RouterGroup) *UserController {
	a := &UserController{}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g.POST("/users/password", a.changePassword)

	admin := g.Group("/users")
	admin.Use(middleware.RequireRole(model.RoleAdmin))
	{
		admin.GET("", a.getUsers)
		admin.POST("", a.registerUser)
		admin.POST("/update", a.updateUser)
		admin.DELETE("/:id", a.deleteUser)
		admin.GET("/generatePassword", a.generatePassword)
	}
}

func (a *UserController) getUsers(c *gin.Context) {
	users, err := a.userService.GetUsers()
	if err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}
	jsonObj(c, users, nil)
}

// registerUser inserts a new user with a generated identifier. Registration
// without a previously generated password is refused.
func (a *UserController) registerUser(c *gin.Context) {
	var form UserForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}

	if form.Password == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.users.toasts.missingPassword"))
		return
	}
	role := model.UserRole(form.Role)
	if !role.Valid() {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.users.toasts.invalidRole", "Role=="+form.Role))
		return
	}
	membership := model.MembershipType(form.MembershipType)
	if !membership.Valid() {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.users.toasts.invalidMembership", "Membership=="+form.MembershipType))
		return
	}

	currentUser := session.GetLoginUser(c)
	user := &model.User{
		Id:                 random.Id(userIdLength),
		FullName:           form.FullName,
		WorkNumber:         form.WorkNumber,
		Email:              form.Email,
		PhoneNumber:        form.PhoneNumber,
		Role:               role,
		MembershipType:     membership,
		Password:           form.Password,
		Status:             model.StatusActive,
		MustChangePassword: true,
		CreatedAt:          time.Now().Format("2006-01-02"),
	}
	if currentUser != nil {
		user.CreatedBy = currentUser.FullName
	}

	err := a.userService.AddUser(user)
	jsonMsgObj(c, I18nWeb(c, "pages.users.toasts.userRegistered"), user, err)
}

// updateUser replaces the stored record in full. An empty password keeps the
// stored one, since listings never expose it. Updating the caller's own
// record refreshes the session immediately.
func (a *UserController) updateUser(c *gin.Context) {
	var form UserForm
	if err := c.ShouldBind(&form); err != nil || form.Id == "" {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}

	role := model.UserRole(form.Role)
	if !role.Valid() {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.users.toasts.invalidRole", "Role=="+form.Role))
		return
	}
	membership := model.MembershipType(form.MembershipType)
	if !membership.Valid() {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.users.toasts.invalidMembership", "Membership=="+form.MembershipType))
		return
	}
	if form.Status != "" && !model.ValidUserStatus(form.Status) {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.users.toasts.invalidStatus", "Status=="+form.Status))
		return
	}

	stored, err := a.userService.GetUser(form.Id)
	if err != nil {
		if database.IsNotFound(err) {
			// unknown ids are ignored, the directory stays as it is
			jsonMsg(c, I18nWeb(c, "pages.users.toasts.userUpdated"), nil)
			return
		}
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}

	user := &model.User{
		Id:                 stored.Id,
		FullName:           form.FullName,
		WorkNumber:         form.WorkNumber,
		Email:              form.Email,
		PhoneNumber:        form.PhoneNumber,
		Role:               role,
		MembershipType:     membership,
		Password:           form.Password,
		Status:             form.Status,
		MustChangePassword: stored.MustChangePassword,
		CreatedAt:          stored.CreatedAt,
		CreatedBy:          stored.CreatedBy,
	}
	if user.Password == "" {
		user.Password = stored.Password
	}
	if user.Status == "" {
		user.Status = stored.Status
	}

	if err := a.userService.UpdateUser(user); err != nil {
		jsonMsg(c, I18nWeb(c, "fail"), err)
		return
	}

	if currentUser := session.GetLoginUser(c); currentUser != nil && currentUser.Id == user.Id {
		if err := session.SetLoginUser(c, user); err != nil {
			logger.Warning("refresh session user failed:", err)
		}
	}
	jsonMsgObj(c, I18nWeb(c, "pages.users.toasts.userUpdated"), user, nil)
}

// deleteUser removes a user. Deleting the identifier bound to the caller's
// own session is refused and the directory is left untouched.
func (a *UserController) deleteUser(c *gin.Context) {
	id := c.Param("id")

	if currentUser := session.GetLoginUser(c); currentUser != nil && currentUser.Id == id {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.users.toasts.selfDelete"))
		return
	}

	err := a.userService.DeleteUser(id)
	jsonMsg(c, I18nWeb(c, "pages.users.toasts.userDeleted"), err)
}

// generatePassword returns a fresh credential for the registration flow.
func (a *UserController) generatePassword(c *gin.Context) {
	jsonMsgObj(c, I18nWeb(c, "pages.users.toasts.passwordGenerated"), random.Password(generatedPasswordLength), nil)
}

// changePassword validates and applies a password change for the session
// user, then refreshes the session so the cleared must-change flag is visible
// immediately.
func (a *UserController) changePassword(c *gin.Context) {
	var form ChangePasswordForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.login.toasts.invalidFormData"))
		return
	}

	currentUser := session.GetLoginUser(c)
	if currentUser == nil {
		pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "pages.login.toasts.loginAgain"))
		return
	}

	err := a.userService.ChangePassword(currentUser.Id, form.CurrentPassword, form.NewPassword, form.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrIncorrectCurrentPassword):
			pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.users.toasts.incorrectCurrentPassword"))
		case errors.Is(err, service.ErrPasswordTooShort):
			pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.users.toasts.passwordTooShort"))
		case errors.Is(err, service.ErrPasswordMismatch):
			pureJsonMsg(c, http.StatusOK, false, I18nWeb(c, "pages.users.toasts.passwordMismatch"))
		default:
			jsonMsg(c, I18nWeb(c, "fail"), err)
		}
		return
	}

	user, err := a.userService.GetUser(currentUser.Id)
	if err == nil {
		if err := session.SetLoginUser(c, user); err != nil {
			logger.Warning("refresh session user failed:", err)
		}
	}
	jsonMsg(c, I18nWeb(c, "pages.users.toasts.passwordChanged"), nil)
}
