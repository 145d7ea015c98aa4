package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"

	"github.com/vcorps/corps-panel/database"
	"github.com/vcorps/corps-panel/logger"
	"github.com/vcorps/corps-panel/database/model"
	"github.com/vcorps/corps-panel/web/entity"
	"github.com/vcorps/corps-panel/web/service"
	"github.com/vcorps/corps-panel/web/session"
)

func setup() {
	logger.InitLogger(logging.ERROR)
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

// newPanelEngine wires a minimal engine around the user controller: cookie
// sessions, a key-echoing stand-in for the localizer, and a login helper.
func newPanelEngine() *gin.Engine {
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

	api := engine.Group("/panel/api")
	NewUserController(api)
	return engine
}

func loginCookies(t *testing.T, engine *gin.Engine, id string) []*http.Cookie {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/testlogin/"+id, nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	return w.Result().Cookies()
}

func decodeMsg(t *testing.T, w *httptest.ResponseRecorder) entity.Msg {
	var m entity.Msg
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &m))
	return m
}

func TestSelfDeletionRefused(t *testing.T) {
	setup()
	defer teardown()

	engine := newPanelEngine()
	cookies := loginCookies(t, engine, "1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest("DELETE", "/panel/api/users/1", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	m := decodeMsg(t, w)
	assert.False(t, m.Success)
	assert.Equal(t, "pages.users.toasts.selfDelete", m.Msg)

	// the directory is untouched
	userService := service.UserService{}
	_, err := userService.GetUser("1")
	assert.NoError(t, err)
}

func TestRegisterRequiresGeneratedPassword(t *testing.T) {
	setup()
	defer teardown()

	engine := newPanelEngine()
	cookies := loginCookies(t, engine, "1")

	body := `{"fullName":"Jane Doe","email":"jane@redcross.org","role":"volunteer","membershipType":"ordinary-member"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/panel/api/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	m := decodeMsg(t, w)
	assert.False(t, m.Success)
	assert.Equal(t, "pages.users.toasts.missingPassword", m.Msg)

	users, err := (&service.UserService{}).GetUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUpdateRejectsUnknownStatus(t *testing.T) {
	setup()
	defer teardown()

	engine := newPanelEngine()
	cookies := loginCookies(t, engine, "1")

	userService := service.UserService{}
	u := &model.User{
		Id:             "u1",
		FullName:       "Jane Doe",
		Email:          "jane@redcross.org",
		Role:           model.RoleVolunteer,
		MembershipType: model.MembershipOrdinary,
		Password:       "Gen#Pass1234",
		Status:         model.StatusActive,
	}
	assert.NoError(t, userService.AddUser(u))

	// on-leave is a worker state, not an account state
	body := `{"id":"u1","fullName":"Jane Doe","email":"jane@redcross.org","role":"volunteer","membershipType":"ordinary-member","status":"on-leave"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/panel/api/users/update", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	m := decodeMsg(t, w)
	assert.False(t, m.Success)
	assert.Equal(t, "pages.users.toasts.invalidStatus", m.Msg)

	stored, err := userService.GetUser("u1")
	assert.NoError(t, err)
	assert.Equal(t, model.StatusActive, stored.Status)
}

func TestRegisterViaApi(t *testing.T) {
	setup()
	defer teardown()

	engine := newPanelEngine()
	cookies := loginCookies(t, engine, "1")

	body := `{"fullName":"Jane Doe","email":"jane@redcross.org","role":"volunteer","membershipType":"ordinary-member","password":"Gen#Pass1234"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/panel/api/users", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	m := decodeMsg(t, w)
	assert.True(t, m.Success)

	users, err := (&service.UserService{}).GetUsers()
	assert.NoError(t, err)
	if assert.Len(t, users, 2) {
		created := users[1]
		assert.Len(t, created.Id, userIdLength)
		assert.True(t, created.MustChangePassword)
		assert.Equal(t, model.RoleVolunteer, created.Role)
		assert.Equal(t, "System Administrator", created.CreatedBy)
	}
}
