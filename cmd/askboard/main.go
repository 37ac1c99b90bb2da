package main

import (
	"flag"
	"log"
	"net/http"

	"github.com/askboard-dev/askboard/internal/config"
	"github.com/askboard-dev/askboard/internal/logger"
	"github.com/askboard-dev/askboard/internal/router"
	"github.com/askboard-dev/askboard/internal/setup"
)

func main() {
	var configFolder string
	flag.StringVar(&configFolder, "config_folder", "config", "path to folder with configs")
	flag.Parse()

	cfg := config.MustLoad(configFolder)
	logger.Initialize(cfg.Public.LogLevel, cfg.Public.LogJSON)

	deps, err := setup.SetupDependencies(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer deps.Storage.Cleanup()

	r := router.New(deps)

	logger.Log.Info("server started", "addr", cfg.Public.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.Public.ListenAddr, r))
}
