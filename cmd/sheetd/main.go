// Command sheetd hosts one Grid per sheet id behind a small JSON API,
// grounded on App.go/router.go/ApiController.go/ServiceContainer.go.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

const exitCodeMainError = 1

const defaultListenAddr = ":8080"

func runApp() error {
	gin.SetMode(gin.ReleaseMode)

	container := buildServiceContainer()
	container.Dispatcher.Start()
	defer container.Dispatcher.Close()

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = defaultListenAddr
	}

	slog.Info("sheetd listening", "addr", addr)
	return http.ListenAndServe(addr, container.Router)
}

func main() {
	if err := runApp(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeMainError)
	}
}
