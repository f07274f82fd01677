package database

import (
	"testing"

	"github.com/collablab-app/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchByNameIsCaseInsensitiveSubstring(t *testing.T) {
	db := newTestDB(t)
	repo := NewSkillRepo(db)

	seedSkill(t, db, "TypeScript", models.CategoryFrontend)
	seedSkill(t, db, "JavaScript", models.CategoryFrontend)
	seedSkill(t, db, "Go", models.CategoryBackend)

	results, err := repo.SearchByName("script")
	require.NoError(t, err)
	require.Len(t, results, 2)

	names := []string{results[0].Name, results[1].Name}
	assert.Contains(t, names, "TypeScript")
	assert.Contains(t, names, "JavaScript")
}

func TestSkillCRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewSkillRepo(db)

	skill := &models.Skill{Name: "Docker", Category: models.CategoryDevops}
	require.NoError(t, repo.Add(skill))

	found, err := repo.FindByID(skill.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "Docker", found.Name)

	found.Name = "Docker Compose"
	require.NoError(t, repo.Update(found))

	all, err := repo.FindAll()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Docker Compose", all[0].Name)

	require.NoError(t, repo.Delete(skill.ID))

	missing, err := repo.FindByID(skill.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
