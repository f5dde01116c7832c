package main

import (
	"personalhub/connection"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := connection.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("load config")
	}
	connection.SetupLogger(cfg.Log)

	if err := connection.StartServer(cfg); err != nil {
		logrus.WithError(err).Fatal("server stopped")
	}
}
