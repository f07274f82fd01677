package api

import (
	"github.com/collablab-app/backend/database"
	"github.com/collablab-app/backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, chatService *services.ChatService) *routeHandlers {
	return &routeHandlers{
		userHandler:         newUserHandler(database.UserRepo()),
		skillHandler:        newSkillHandler(database.SkillRepo()),
		projectHandler:      newProjectHandler(database.ProjectRepo(), database.UserRepo()),
		projectSkillHandler: newProjectSkillHandler(database.ProjectSkillRepo(), database.ProjectRepo()),
		membershipHandler:   newMembershipHandler(database.UserProjectRepo(), database.UserRepo()),
		applicationHandler:  newApplicationHandler(database.ApplicationRepo(), database.UserRepo()),
		messageHandler:      newMessageHandler(database.MessageRepo()),
		chatHandler:         newChatHandler(chatService),
	}
}
