package bookkbot

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/slack-go/slack"
	"github.com/toorop/gin-logrus"
)

// SlackAPI is the slice of the Slack Web API the bot consumes.
// *slack.Client satisfies it.
type SlackAPI interface {
	OpenDialog(triggerID string, dialog slack.Dialog) error
	GetUserProfile(userID string, includeLabels bool) (*slack.UserProfile, error)
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}

type Bot struct {
	cfg Config

	api      SlackAPI
	archiver *Archiver

	server *http.Server
	logger *logrus.Logger

	sync.Mutex
}

func NewBot(cfg Config) *Bot {
	return &Bot{
		cfg: cfg,
		api: slack.New(cfg.SlackAPIToken),
		archiver: NewArchiver(
			NewOpenGraphClient(cfg.OGAppID),
			NewNotionClient(cfg.NotionSecretKey, cfg.NotionDatabaseID),
			cfg.ArchiveQueueSize,
		),
	}
}

func (b *Bot) Logger() *logrus.Logger {
	if b.logger == nil {
		b.Lock()
		defer b.Unlock()
		if b.logger == nil {
			b.logger = logrus.StandardLogger()
		}
	}
	return b.logger
}

func (b *Bot) SetLogger(logger *logrus.Logger) {
	b.Lock()
	defer b.Unlock()

	b.logger = logger
}

func (b *Bot) SetAPI(api SlackAPI) {
	b.Lock()
	defer b.Unlock()

	b.api = api
}

func (b *Bot) Boot(listenAddr string) error {
	engine := gin.New()
	engine.Use(gin.Recovery())

	return b.BootWithEngine(listenAddr, engine)
}

func (b *Bot) BootWithEngine(listenAddr string, engine *gin.Engine) error {
	b.Logger().Infof("Booting bookkbot on %s", listenAddr)

	b.Lock()
	defer b.Unlock()

	if b.server != nil {
		return ErrAlreadyBooted
	}

	b.prepareEngine(engine, true)

	b.archiver.SetLogger(b.logger)
	b.archiver.Start()

	b.server = &http.Server{
		Addr:    listenAddr,
		Handler: engine,
	}

	server := b.server
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			b.Logger().WithError(err).Fatalln("Failed to start server")
		}
	}()

	return nil
}

func (b *Bot) prepareEngine(engine *gin.Engine, verify bool) {
	engine.Use(ginlogrus.Logger(b.Logger()))

	group := engine.Group("/")
	if verify {
		group.Use(b.newSlackVerifierMiddleware())
	}

	b.Logger().Infof("Wired form opener to %sopen-form/", group.BasePath())
	group.POST("/open-form/", b.newOpenFormHandler())
	b.Logger().Infof("Wired book submissions to %ssubmit-book/", group.BasePath())
	group.POST("/submit-book/", b.newSubmitBookHandler())
}

func (b *Bot) Shutdown() {
	b.Lock()
	defer b.Unlock()

	if b.server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := b.server.Shutdown(ctx); err != nil {
		b.Logger().WithError(err).Fatalln("Server forced to shutdown")
	}

	b.server = nil
	b.archiver.Stop()
}
