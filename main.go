package main

import (
	"log"

	"werkzeug_dashboard/app"
	"werkzeug_dashboard/config"
	"werkzeug_dashboard/routes"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	r := application.Router
	routes.RegisterRoutes(r, application)

	port := application.Config.Port
	application.Logger.Info("listening", "port", port, "backend", application.Config.APIBaseURL)
	if err := r.Run(":" + port); err != nil {
		log.Printf("server: %v", err)
	}
}
