package database

import (
	"github.com/collablab-app/backend/models"
	"gorm.io/gorm"
)

type Database struct {
	userRepo         *UserRepo
	skillRepo        *SkillRepo
	projectRepo      *ProjectRepo
	projectSkillRepo *ProjectSkillRepo
	userProjectRepo  *UserProjectRepo
	applicationRepo  *ApplicationRepo
	messageRepo      *MessageRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		userRepo:         NewUserRepo(db),
		skillRepo:        NewSkillRepo(db),
		projectRepo:      NewProjectRepo(db),
		projectSkillRepo: NewProjectSkillRepo(db),
		userProjectRepo:  NewUserProjectRepo(db),
		applicationRepo:  NewApplicationRepo(db),
		messageRepo:      NewMessageRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) ProjectSkillRepo() *ProjectSkillRepo {
	return d.projectSkillRepo
}

func (d Database) UserProjectRepo() *UserProjectRepo {
	return d.userProjectRepo
}

func (d Database) ApplicationRepo() *ApplicationRepo {
	return d.applicationRepo
}

func (d Database) MessageRepo() *MessageRepo {
	return d.messageRepo
}

// AutoMigrate creates or updates the schema for all tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Skill{},
		&models.UserSkill{},
		&models.Project{},
		&models.ProjectSkill{},
		&models.UserProject{},
		&models.Application{},
		&models.Message{},
	)
}
