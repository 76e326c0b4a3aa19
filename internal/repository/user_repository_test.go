package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUserRepo(t *testing.T) (UserRepository, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewUserRepository(db), db
}

func TestUserRepository_Register_EmailTaken(t *testing.T) {
	repo, _ := setupUserRepo(t)

	first := &models.User{
		Name:         "First",
		Email:        "taken@psu.edu.ph",
		PasswordHash: "hash",
		PlatformRole: models.RoleStudent,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, repo.Register(first))

	second := &models.User{
		Name:         "Second",
		Email:        "taken@psu.edu.ph",
		PasswordHash: "hash",
		PlatformRole: models.RoleStudent,
		Status:       models.UserStatusActive,
	}
	require.ErrorIs(t, repo.Register(second), ErrEmailTaken)
}

func TestUserRepository_Register_SoftDeletedEmailStaysTaken(t *testing.T) {
	repo, db := setupUserRepo(t)

	user := &models.User{
		Name:         "Leaver",
		Email:        "leaver@psu.edu.ph",
		PasswordHash: "hash",
		PlatformRole: models.RoleStudent,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, repo.Register(user))
	require.NoError(t, db.Delete(user).Error)

	again := &models.User{
		Name:         "Returner",
		Email:        "leaver@psu.edu.ph",
		PasswordHash: "hash",
		PlatformRole: models.RoleStudent,
		Status:       models.UserStatusActive,
	}
	require.ErrorIs(t, repo.Register(again), ErrEmailTaken)
}

func TestUserRepository_Register_PhoneTaken(t *testing.T) {
	repo, _ := setupUserRepo(t)

	phone := "09123456789"
	first := &models.User{
		Name:         "First",
		Email:        "first@psu.edu.ph",
		Phone:        &phone,
		PasswordHash: "hash",
		PlatformRole: models.RoleStudent,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, repo.Register(first))

	second := &models.User{
		Name:         "Second",
		Email:        "second@psu.edu.ph",
		Phone:        &phone,
		PasswordHash: "hash",
		PlatformRole: models.RoleStudent,
		Status:       models.UserStatusActive,
	}
	require.ErrorIs(t, repo.Register(second), ErrPhoneTaken)
}

// The unique indexes, not the count-checks, are what stop two racing
// registrations: inserting a duplicate phone or id_number directly, with no
// check in front, must fail on the index itself.
func TestUserRepository_UniqueIndexesBackstopTheChecks(t *testing.T) {
	_, db := setupUserRepo(t)

	phone := "09123456789"
	idNumber := "2026-00123"
	require.NoError(t, db.Create(&models.User{
		Name:         "Winner",
		Email:        "winner@psu.edu.ph",
		Phone:        &phone,
		IDNumber:     &idNumber,
		PasswordHash: "hash",
		PlatformRole: models.RoleStudent,
		Status:       models.UserStatusActive,
	}).Error)

	samePhone := db.Create(&models.User{
		Name:         "Racer",
		Email:        "racer@psu.edu.ph",
		Phone:        &phone,
		PasswordHash: "hash",
		PlatformRole: models.RoleStudent,
		Status:       models.UserStatusActive,
	}).Error
	require.ErrorIs(t, samePhone, gorm.ErrDuplicatedKey)

	sameIDNumber := db.Create(&models.User{
		Name:         "Racer",
		Email:        "racer@psu.edu.ph",
		IDNumber:     &idNumber,
		PasswordHash: "hash",
		PlatformRole: models.RoleStudent,
		Status:       models.UserStatusActive,
	}).Error
	require.ErrorIs(t, sameIDNumber, gorm.ErrDuplicatedKey)

	// Accounts without a phone or id number store NULL, which the indexes
	// admit any number of times.
	for _, email := range []string{"one@u.edu", "two@u.edu"} {
		require.NoError(t, db.Create(&models.User{
			Name:         "No Contact",
			Email:        email,
			PasswordHash: "hash",
			PlatformRole: models.RoleInstitution,
			Status:       models.UserStatusPending,
		}).Error)
	}
}

func TestUserRepository_ListInstitutions_FiltersByStatus(t *testing.T) {
	repo, _ := setupUserRepo(t)

	pending := &models.User{
		Name:         "Pending U",
		Email:        "pending@u.edu",
		PasswordHash: "hash",
		PlatformRole: models.RoleInstitution,
		Status:       models.UserStatusPending,
	}
	require.NoError(t, repo.Register(pending))

	approved := &models.User{
		Name:         "Approved U",
		Email:        "approved@u.edu",
		PasswordHash: "hash",
		PlatformRole: models.RoleInstitution,
		Status:       models.UserStatusApproved,
	}
	require.NoError(t, repo.Register(approved))

	student := &models.User{
		Name:         "Student",
		Email:        "student@u.edu",
		PasswordHash: "hash",
		PlatformRole: models.RoleStudent,
		Status:       models.UserStatusActive,
	}
	require.NoError(t, repo.Register(student))

	all, err := repo.ListInstitutions(nil)
	require.NoError(t, err)
	require.Len(t, all, 2)

	status := models.UserStatusPending
	filtered, err := repo.ListInstitutions(&status)
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, "Pending U", filtered[0].Name)
}

// newMockDB opens GORM over a sqlmock connection so the exact SQL of a
// repository method can be asserted.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestUserRepository_EmailExists_IgnoresSoftDeleteScope(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	// Unscoped: the query must not carry a deleted_at filter.
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE email = \\?").
		WithArgs("ghost@psu.edu.ph").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	exists, err := repo.EmailExists("ghost@psu.edu.ph")
	require.NoError(t, err)
	require.True(t, exists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CountByRole(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users` WHERE platform_role = \\?").
		WithArgs("student").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(42))

	count, err := repo.CountByRole(models.RoleStudent)
	require.NoError(t, err)
	require.Equal(t, int64(42), count)
	require.NoError(t, mock.ExpectationsWereMet())
}
