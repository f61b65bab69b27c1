package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-weekend-raytracer/pkg/publish"
	"github.com/df07/go-weekend-raytracer/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	envFile := flag.String("env", ".env", "Environment file to load")
	flag.Parse()

	if err := publish.LoadEnv(*envFile); err != nil {
		log.Printf("Error loading environment: %v", err)
		os.Exit(1)
	}

	webServer := server.NewServer(*port)

	// Publishing is optional; it needs at least a bucket
	if config := publish.ConfigFromEnv(); config.Bucket != "" {
		publisher, err := publish.NewPublisher(config)
		if err != nil {
			log.Printf("Error configuring publisher: %v", err)
			os.Exit(1)
		}
		publisher.SetLogger(log.Default())
		webServer.SetPublisher(publisher)
		log.Printf("Publishing renders to bucket %s", config.Bucket)
	}

	log.Printf("Weekend Raytracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?mode=materials&samples=20", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
