package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (app *application) routes() http.Handler {
	mux := chi.NewRouter()

	mux.NotFound(app.notFound)
	mux.MethodNotAllowed(app.methodNotAllowed)

	mux.Use(app.traceID)
	mux.Use(app.logAccess)
	mux.Use(app.recoverPanic)

	mux.Use(app.CORS)

	mux.Get("/status", app.handleStatus)

	mux.Post("/register", app.handleRegister)
	mux.Post("/login", app.handleLogin)
	mux.Post("/logout", app.handleLogout)
	mux.Get("/session/validate", app.handleValidateSession)

	mux.Get("/stats", app.handleTaskStats)

	mux.Group(func(mux chi.Router) {
		mux.Use(app.authenticate)

		mux.Post("/task", app.handleCreateTask)
		mux.Put("/task", app.handleUpdateTask)
		mux.Delete("/task/{taskId}", app.handleDeleteTask)
		mux.Get("/tasks", app.handleListTasks)
		mux.Get("/tasks/user/{userId}", app.handleListUserTasks)
	})

	app.logger.Debug("routes configured", "routes", chiRoutesToStrings(mux.Routes()))

	return mux
}

func chiRoutesToStrings(routes []chi.Route) []string {
	parsedRoutes := make([]string, 0, len(routes))
	for _, route := range routes {
		parsedRoutes = append(parsedRoutes, route.Pattern)
	}
	return parsedRoutes
}
