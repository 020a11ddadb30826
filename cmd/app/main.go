package main

import (
	"trainboard/config"
	"trainboard/di"
	"trainboard/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
