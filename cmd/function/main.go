package main

import (
	"log"
	"os"

	// Blank import registers the function with the framework.
	_ "github.com/pep299/portfolio-pulse"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := funcframework.Start(port); err != nil {
		log.Fatalf("funcframework.Start: %v", err)
	}
}
