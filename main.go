package main

import (
	"fmt"
	"os"

	"videoflix-service/app"
	"videoflix-service/pkg/observability"
)

func main() {
	observability.StartProfiling("videoflix-service")

	if err := app.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "videoflix-service: %v\n", err)
		os.Exit(1)
	}
}
