package database

import (
	"fmt"
	"strings"
	"testing"

	"github.com/collablab-app/backend/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database and migrates the schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, externalID, name string) *models.User {
	t.Helper()

	user := &models.User{
		ExternalID:         externalID,
		Email:              externalID + "@example.edu",
		Name:               name,
		Role:               models.RoleStudent,
		OnboardingComplete: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedSkill(t *testing.T, db *gorm.DB, name, category string) *models.Skill {
	t.Helper()

	skill := &models.Skill{Name: name, Category: category}
	require.NoError(t, db.Create(skill).Error)
	return skill
}

func seedProject(t *testing.T, db *gorm.DB, creatorID uuid.UUID, title string) *models.Project {
	t.Helper()

	project := &models.Project{
		Title:       title,
		Description: "test project",
		Status:      models.ProjectRecruiting,
		Vacancies:   2,
		CreatorID:   creatorID,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}
