package main

import (
	"log/slog"
	"os"

	"github.com/ozanyld/cinema-reservation-api/internal/app"
)

func main() {
	err := app.Run()
	if err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		logger.Error(err.Error())
		os.Exit(1)
	}
}
