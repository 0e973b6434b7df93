package main

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"

	"bookkbot"
)

// Post the monthly reading digest to the books channel. Run from cron
// on the first day of each month.
func main() {
	cfg, err := bookkbot.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatalln("Failed to load config")
	}

	reporter := bookkbot.NewDigestReporter(
		slack.New(cfg.SlackAPIToken),
		bookkbot.NewNotionClient(cfg.NotionSecretKey, cfg.NotionDatabaseID),
		cfg.BooksChannel,
	)

	if err := reporter.Run(time.Now()); err != nil {
		logrus.WithError(err).Fatalln("Failed to post monthly digest")
	}
}
