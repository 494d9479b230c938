package main

import (
	_ "github.com/avelinsk/task-manager/docs" // swagger docs registration
	"github.com/avelinsk/task-manager/internal/app"
	"github.com/avelinsk/task-manager/pkg/logger"
)

// @title           Task Manager API
// @version         1.0
// @description     Backend for managing users, projects and tasks.

// @host      localhost:8080
// @BasePath  /api

func main() {
	a, err := app.NewApp()
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to initialize app")
	}

	if err := a.Run(); err != nil {
		logger.Log.WithError(err).Fatal("Failed to run app")
	}
}
