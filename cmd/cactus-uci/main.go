package main

import (
	"flag"
	"log"

	"github.com/Water-Engine/cactus/internal/config"
	"github.com/Water-Engine/cactus/internal/uci"
)

var configPath = flag.String("config", "", "path to a YAML config file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config %s: %v", *configPath, err)
	}

	protocol := uci.New(cfg)
	protocol.Run()
}
