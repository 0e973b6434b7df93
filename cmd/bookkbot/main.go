package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"bookkbot"
)

// Boot the webhook server handling form opens and book submissions.
func main() {
	cfg, err := bookkbot.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatalln("Failed to load config")
	}

	bot := bookkbot.NewBot(cfg)

	if err := bot.Boot(cfg.ListenAddr); err != nil {
		logrus.WithError(err).Fatalln("Failed to start bot")
	}
	defer bot.Shutdown()

	// wait for exit
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Infoln("Shutting down...")
}
