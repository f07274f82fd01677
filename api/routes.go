package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes sets up all routes behind the identity middleware
func setupRoutes(r chi.Router, handlers *routeHandlers, identity identityMiddleware) {
	r.Group(func(r chi.Router) {
		r.Use(identity.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		// User endpoints
		r.Post("/users", handlers.userHandler.getOrCreateUser())
		r.Get("/users/{userID}", handlers.userHandler.getUser())
		r.Patch("/users/{userID}", handlers.userHandler.updateUser())
		r.Delete("/users/{userID}", handlers.userHandler.deleteUser())
		r.Get("/users/{userID}/skills", handlers.userHandler.getUserSkills())
		r.Post("/users/{userID}/skills", handlers.userHandler.addUserSkill())
		r.Delete("/users/{userID}/skills/{skillID}", handlers.userHandler.removeUserSkill())
		r.Get("/users/{userID}/onboarding", handlers.userHandler.getOnboarding())
		r.Get("/users/{userID}/projects", handlers.membershipHandler.getUserProjects())

		// Skill endpoints
		r.Get("/skills", handlers.skillHandler.getAllSkills())
		r.Post("/skills", handlers.skillHandler.createSkill())
		r.Put("/skills", handlers.skillHandler.updateSkill())
		r.Delete("/skills", handlers.skillHandler.deleteSkill())
		r.Get("/skills/search/{name}", handlers.skillHandler.searchSkills())
		r.Get("/skills/{skillID}", handlers.skillHandler.getSkill())

		// Project endpoints
		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Post("/projects", handlers.projectHandler.createProject())
		r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
		r.Patch("/projects/{projectID}", handlers.projectHandler.updateProjectStatus())
		r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())

		// Project skill endpoints
		r.Get("/projects/{projectID}/skills", handlers.projectSkillHandler.getProjectSkills())
		r.Post("/projects/{projectID}/skills", handlers.projectSkillHandler.addProjectSkill())
		r.Put("/projects/{projectID}/skills/{skillID}", handlers.projectSkillHandler.updateProjectSkill())
		r.Delete("/projects/{projectID}/skills/{skillID}", handlers.projectSkillHandler.removeProjectSkill())

		// Membership endpoints
		r.Post("/projects/{projectID}/join", handlers.membershipHandler.joinProject())
		r.Delete("/projects/{projectID}/leave", handlers.membershipHandler.leaveProject())
		r.Get("/projects/{projectID}/members", handlers.membershipHandler.getProjectMembers())

		// Application endpoints
		r.Get("/applications", handlers.applicationHandler.listApplications())
		r.Post("/applications", handlers.applicationHandler.createApplication())
		r.Get("/applications/{applicationID}", handlers.applicationHandler.getApplication())
		r.Put("/applications/{applicationID}", handlers.applicationHandler.updateApplication())
		r.Delete("/applications/{applicationID}", handlers.applicationHandler.deleteApplication())

		// Message endpoints
		r.Get("/messages", handlers.messageHandler.getConversation())
		r.Post("/messages", handlers.messageHandler.createMessage())
		r.Get("/messages/{messageID}", handlers.messageHandler.getMessage())
		r.Patch("/messages/{messageID}", handlers.messageHandler.updateMessage())
		r.Delete("/messages/{messageID}", handlers.messageHandler.deleteMessage())

		// AI idea suggestions
		r.Post("/chat", handlers.chatHandler.chat())
	})
}
