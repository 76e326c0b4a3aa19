package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rbgonzales/campus-engagement-api/internal/constants"
	"github.com/rbgonzales/campus-engagement-api/internal/middleware"
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/rbgonzales/campus-engagement-api/internal/repository"
	"github.com/rbgonzales/campus-engagement-api/internal/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db     *gorm.DB
	router *gin.Engine
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Club{},
		&models.ClubMember{},
		&models.Event{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	userRepo := repository.NewUserRepository(db)
	clubRepo := repository.NewClubRepository(db)
	eventRepo := repository.NewEventRepository(db)

	authHandler := NewAuthHandler(services.NewAuthService(userRepo))
	adminHandler := NewAdminHandler(services.NewAdminService(userRepo, clubRepo, eventRepo))

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	auth := r.Group("/api/auth")
	{
		auth.POST("/register/student", authHandler.RegisterStudent)
		auth.POST("/register/institution", authHandler.RegisterInstitution)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
	}

	admin := r.Group("/api/admin")
	admin.Use(middleware.RequireAuth(), middleware.RequireRole(models.RoleSuperAdmin))
	{
		admin.GET("/institutions", adminHandler.ListInstitutions)
		admin.POST("/institutions/:id/approve", adminHandler.ApproveInstitution)
		admin.POST("/institutions/:id/reject", adminHandler.RejectInstitution)
	}

	return authTestEnv{db: db, router: r}
}

func (env authTestEnv) seedSuperAdmin(t *testing.T) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.DefaultCost)
	require.NoError(t, err)

	admin := &models.User{
		Name:         "Platform Admin",
		Email:        "root@platform.test",
		PasswordHash: string(hash),
		PlatformRole: models.RoleSuperAdmin,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, env.db.Create(admin).Error)
	return admin
}

// doJSON performs a request, attaching any session cookies and decoding the
// JSON response body.
func (env authTestEnv) doJSON(t *testing.T, method, url string, payload any, cookies []*http.Cookie) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		require.NoError(t, err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	var response map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	}
	return w, response
}

func (env authTestEnv) login(t *testing.T, email, password string) []*http.Cookie {
	t.Helper()

	w, _ := env.doJSON(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}

func TestAuthHandler_RegisterInstitution(t *testing.T) {
	env := setupAuthTestEnv(t)

	w, response := env.doJSON(t, http.MethodPost, "/api/auth/register/institution", map[string]string{
		"name":     "Partido State University",
		"email":    "admin@parsu.edu.ph",
		"password": "supersecret",
	}, nil)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, true, response["ok"])

	institution := response["institution"].(map[string]any)
	require.Equal(t, "pending", institution["status"])
	require.Equal(t, "partido-state-university", institution["slug"])
}

func TestAuthHandler_RegisterStudent_InstitutionMustBeApproved(t *testing.T) {
	env := setupAuthTestEnv(t)

	w, response := env.doJSON(t, http.MethodPost, "/api/auth/register/institution", map[string]string{
		"name":     "Partido State University",
		"email":    "admin@parsu.edu.ph",
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	institutionID := response["institution"].(map[string]any)["id"].(float64)

	w, response = env.doJSON(t, http.MethodPost, "/api/auth/register/student", map[string]any{
		"name":           "Juan Dela Cruz",
		"email":          "juan@parsu.edu.ph",
		"phone":          "09123456789",
		"id_number":      "2026-00123",
		"password":       "supersecret",
		"institution_id": institutionID,
	}, nil)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, false, response["ok"])
	require.Equal(t, "FORBIDDEN", response["code"])
}

func TestAuthFlow_RegistrationReviewAndLogin(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.seedSuperAdmin(t)

	// Institution applies.
	w, response := env.doJSON(t, http.MethodPost, "/api/auth/register/institution", map[string]string{
		"name":     "Partido State University",
		"email":    "admin@parsu.edu.ph",
		"password": "supersecret",
	}, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	institutionID := uint64(response["institution"].(map[string]any)["id"].(float64))

	// The super admin approves it.
	adminCookies := env.login(t, "root@platform.test", "supersecret")
	w, response = env.doJSON(t, http.MethodPost,
		"/api/admin/institutions/"+itoa(institutionID)+"/approve", nil, adminCookies)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "approved", response["institution"].(map[string]any)["status"])

	// Approving twice is not a valid transition.
	w, response = env.doJSON(t, http.MethodPost,
		"/api/admin/institutions/"+itoa(institutionID)+"/approve", nil, adminCookies)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "CONFLICT", response["code"])

	// A student can now register.
	studentPayload := map[string]any{
		"name":           "Juan Dela Cruz",
		"email":          "juan@parsu.edu.ph",
		"phone":          "09123456789",
		"id_number":      "2026-00123",
		"password":       "supersecret",
		"institution_id": institutionID,
	}
	w, response = env.doJSON(t, http.MethodPost, "/api/auth/register/student", studentPayload, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "active", response["user"].(map[string]any)["status"])

	// The same email cannot register twice.
	studentPayload["phone"] = "09987654321"
	studentPayload["id_number"] = "2026-00999"
	w, response = env.doJSON(t, http.MethodPost, "/api/auth/register/student", studentPayload, nil)
	require.Equal(t, http.StatusConflict, w.Code)
	require.Equal(t, "CONFLICT", response["code"])
	require.Equal(t, "email already exists", response["error"])

	// The student logs in and sees their own account.
	studentCookies := env.login(t, "juan@parsu.edu.ph", "supersecret")
	w, response = env.doJSON(t, http.MethodGet, "/api/auth/me", nil, studentCookies)
	require.Equal(t, http.StatusOK, w.Code)
	user := response["user"].(map[string]any)
	require.Equal(t, "Juan Dela Cruz", user["name"])
	require.Equal(t, "juan@parsu.edu.ph", user["email"])

	// But is not a super admin.
	w, _ = env.doJSON(t, http.MethodGet, "/api/admin/institutions", nil, studentCookies)
	require.Equal(t, http.StatusForbidden, w.Code)

	// Logging out invalidates the session.
	w, _ = env.doJSON(t, http.MethodPost, "/api/auth/logout", nil, studentCookies)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	env := setupAuthTestEnv(t)

	w, response := env.doJSON(t, http.MethodGet, "/api/auth/me", nil, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "UNAUTHORIZED", response["code"])
}

func itoa(id uint64) string {
	return strconv.FormatUint(id, 10)
}
