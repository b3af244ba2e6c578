package main

import (
	"github.com/gin-gonic/gin"

	"github.com/berejant/gridsheet/internal/formula"
	"github.com/berejant/gridsheet/internal/sheets"
	"github.com/berejant/gridsheet/internal/webhook"
)

// serviceContainer wires the process's dependencies together, grounded on
// ServiceContainer.go's BuildServiceContainer, minus the bbolt handle: this
// repo has no database to open.
type serviceContainer struct {
	Store      *sheets.Store
	Dispatcher *webhook.Dispatcher
	Router     *gin.Engine
}

func buildServiceContainer() *serviceContainer {
	container := &serviceContainer{
		Store:      sheets.NewStore(formula.NewExecutor()),
		Dispatcher: webhook.NewDispatcher(),
	}

	ctl := newController(container.Store, container.Dispatcher)
	container.Router = setupRouter(ctl)

	return container
}
