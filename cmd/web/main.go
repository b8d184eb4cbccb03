package main

import (
	"flag"
	"log"

	"github.com/nar-resolver/internal/web"
)

func main() {
	configFile := flag.String("config", "", "Path to JSON configuration file")
	flag.Parse()

	config := web.DefaultConfig()
	if *configFile != "" {
		loaded, err := web.LoadConfig(*configFile)
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
		config = loaded
	}

	server, err := web.NewServer(config)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
