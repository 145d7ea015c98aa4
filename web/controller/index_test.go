package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/vcorps/corps-panel/database/model"
	"github.com/vcorps/corps-panel/web/service"
	"github.com/vcorps/corps-panel/web/session"
)

func newIndexEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	engine.Use(sessions.Sessions("corps-panel", store))
	engine.Use(func(c *gin.Context) {
		c.Set("I18n", func(key string, params ...string) string { return key })
		c.Next()
	})

	engine.GET("/testlogin/:id", func(c *gin.Context) {
		userService := service.UserService{}
		user, err := userService.GetUser(c.Param("id"))
		if err != nil {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		if err := session.SetLoginUser(c, user); err != nil {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusOK)
	})

	NewIndexController(engine.Group("/"))
	return engine
}

// A user who still must change their password cannot escape the gate by
// logging out; the session has to survive the attempt.
func TestLogoutRefusedWhileMustChangePassword(t *testing.T) {
	setup()
	defer teardown()

	userService := service.UserService{}
	u := &model.User{
		Id:                 "u1",
		FullName:           "Jane Doe",
		Email:              "jane@redcross.org",
		Role:               model.RoleVolunteer,
		MembershipType:     model.MembershipOrdinary,
		Password:           "Gen#Pass1234",
		Status:             model.StatusActive,
		MustChangePassword: true,
	}
	assert.NoError(t, userService.AddUser(u))

	engine := newIndexEngine()
	cookies := loginCookies(t, engine, "u1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	m := decodeMsg(t, w)
	assert.False(t, m.Success)
	assert.Equal(t, "pages.users.toasts.mustChangePassword", m.Msg)

	// the session survived the refused attempt
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogoutClearsSession(t *testing.T) {
	setup()
	defer teardown()

	engine := newIndexEngine()
	cookies := loginCookies(t, engine, "1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decodeMsg(t, w).Success)

	expired := false
	for _, c := range w.Result().Cookies() {
		if c.Name == "corps-panel" && c.MaxAge < 0 {
			expired = true
		}
	}
	assert.True(t, expired)
}
