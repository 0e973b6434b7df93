package bookkbot

import (
	"net/url"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const defaultArchiveQueueSize = 16

// Each storefront serves cover images under one host with one known
// size-token quirk, so normalization is a per-host rewrite table.
type coverRewrite struct {
	host  string
	apply func(string) string
}

var coverRewrites = []coverRewrite{
	{
		host: "img.ridicdn.net",
		apply: func(u string) string {
			return strings.Replace(u, "xxlarge#1", "xxlarge1.png", 1)
		},
	},
	{
		host: "image.yes24.com",
		apply: func(u string) string {
			if strings.HasSuffix(u, "XL") {
				return u + ".png"
			}
			return u
		},
	},
}

// normalizeCoverURL rewrites storefront cover URLs into directly
// embeddable image URLs. Unknown hosts pass through untouched, and each
// rewrite is a no-op once applied.
func normalizeCoverURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	for _, rewrite := range coverRewrites {
		if parsed.Host == rewrite.host {
			return rewrite.apply(raw)
		}
	}
	return raw
}

// Archiver enriches submitted books with page metadata and stores them
// in Notion, decoupled from the request/response cycle. Failures are
// logged and swallowed; nothing is retried.
type Archiver struct {
	og     *OpenGraphClient
	notion *NotionClient

	queue chan Book
	done  chan struct{}

	logger *logrus.Logger

	sync.Mutex
}

func NewArchiver(og *OpenGraphClient, notion *NotionClient, queueSize int) *Archiver {
	if queueSize <= 0 {
		queueSize = defaultArchiveQueueSize
	}
	return &Archiver{
		og:     og,
		notion: notion,
		queue:  make(chan Book, queueSize),
	}
}

func (a *Archiver) Logger() *logrus.Logger {
	if a.logger == nil {
		a.Lock()
		defer a.Unlock()
		if a.logger == nil {
			a.logger = logrus.StandardLogger()
		}
	}
	return a.logger
}

func (a *Archiver) SetLogger(logger *logrus.Logger) {
	if logger == nil {
		return
	}

	a.Lock()
	defer a.Unlock()

	a.logger = logger
}

// Enqueue hands a book to the background worker without ever blocking
// the caller. A full queue drops the book; the submitting user already
// got their response either way.
func (a *Archiver) Enqueue(book Book) {
	select {
	case a.queue <- book:
	default:
		a.Logger().WithField("bookstore_url", book.BookstoreURL).Warn("Archive queue full, dropping book")
	}
}

func (a *Archiver) Start() {
	if a.done != nil {
		return
	}
	a.done = make(chan struct{})

	go a.run()
}

func (a *Archiver) run() {
	defer close(a.done)
	for book := range a.queue {
		a.archive(book)
	}
}

// Stop drains the queue and waits for the worker to exit.
func (a *Archiver) Stop() {
	if a.done == nil {
		return
	}
	close(a.queue)
	<-a.done
	a.done = nil
}

func (a *Archiver) archive(book Book) bool {
	logger := a.Logger().WithField("bookstore_url", book.BookstoreURL)

	meta, err := a.og.Lookup(book.BookstoreURL)
	if err != nil {
		logger.WithError(err).Error("Failed to resolve page metadata")
		return false
	}
	meta.ImageURL = normalizeCoverURL(meta.ImageURL)

	if err := a.notion.CreatePage(book, meta); err != nil {
		logger.WithError(err).Error("Failed to archive book")
		return false
	}

	return true
}
