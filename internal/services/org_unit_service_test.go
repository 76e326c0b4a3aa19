package services

import (
	"testing"

	"github.com/rbgonzales/campus-engagement-api/internal/models"
	"github.com/rbgonzales/campus-engagement-api/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrgUnitService(t *testing.T) (*OrgUnitService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.College{},
		&models.Department{},
		&models.Program{},
	))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewOrgUnitService(repository.NewOrgUnitRepository(db)), db
}

func orgActor(institutionID uint64) Actor {
	id := institutionID
	return Actor{ID: id, Role: models.RoleInstitution, InstitutionID: &id}
}

func TestOrgUnitService_Hierarchy(t *testing.T) {
	service, _ := setupOrgUnitService(t)
	actor := orgActor(1)

	college, err := service.CreateCollege(actor, "College of Engineering", "")
	require.NoError(t, err)
	require.Equal(t, uint64(1), college.InstitutionID)

	department, err := service.CreateDepartment(actor, college.ID, "Computer Science", "")
	require.NoError(t, err)
	require.Equal(t, college.ID, department.CollegeID)
	require.Equal(t, uint64(1), department.InstitutionID)

	program, err := service.CreateProgram(actor, department.ID, "BS Computer Science")
	require.NoError(t, err)
	require.Equal(t, department.ID, program.DepartmentID)

	colleges, err := service.ListColleges(actor)
	require.NoError(t, err)
	require.Len(t, colleges, 1)

	programs, err := service.ListPrograms(actor, &department.ID)
	require.NoError(t, err)
	require.Len(t, programs, 1)
}

func TestOrgUnitService_ForeignParentsAnswerNotFound(t *testing.T) {
	service, _ := setupOrgUnitService(t)
	owner := orgActor(1)
	intruder := orgActor(2)

	college, err := service.CreateCollege(owner, "College of Engineering", "")
	require.NoError(t, err)
	department, err := service.CreateDepartment(owner, college.ID, "Computer Science", "")
	require.NoError(t, err)

	// Other institutions see someone else's units as missing, never as
	// forbidden.
	_, err = service.CreateDepartment(intruder, college.ID, "Poached Department", "")
	require.ErrorIs(t, err, ErrCollegeNotFound)

	_, err = service.CreateProgram(intruder, department.ID, "Poached Program")
	require.ErrorIs(t, err, ErrDepartmentNotFound)

	_, err = service.UpdateCollege(intruder, college.ID, "Renamed")
	require.ErrorIs(t, err, ErrCollegeNotFound)

	err = service.DeleteCollege(intruder, college.ID)
	require.ErrorIs(t, err, ErrCollegeNotFound)
}

func TestOrgUnitService_DeleteCollegeCascades(t *testing.T) {
	service, db := setupOrgUnitService(t)
	actor := orgActor(1)

	college, err := service.CreateCollege(actor, "College of Engineering", "")
	require.NoError(t, err)
	department, err := service.CreateDepartment(actor, college.ID, "Computer Science", "")
	require.NoError(t, err)
	_, err = service.CreateProgram(actor, department.ID, "BS Computer Science")
	require.NoError(t, err)

	require.NoError(t, service.DeleteCollege(actor, college.ID))

	var departments int64
	require.NoError(t, db.Model(&models.Department{}).Count(&departments).Error)
	require.Equal(t, int64(0), departments)

	var programs int64
	require.NoError(t, db.Model(&models.Program{}).Count(&programs).Error)
	require.Equal(t, int64(0), programs)
}

func TestOrgUnitService_NameRequired(t *testing.T) {
	service, _ := setupOrgUnitService(t)
	actor := orgActor(1)

	_, err := service.CreateCollege(actor, "   ", "")
	require.ErrorIs(t, err, ErrOrgUnitNameRequired)
}
