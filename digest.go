package bookkbot

import (
	"fmt"
	"strings"
	"time"

	"github.com/slack-go/slack"
)

// DigestReporter posts the monthly reading summary to the books channel.
// Meant to run from cron; one database read, up to two posts.
type DigestReporter struct {
	api     SlackAPI
	notion  *NotionClient
	channel string
}

func NewDigestReporter(api SlackAPI, notion *NotionClient, channel string) *DigestReporter {
	return &DigestReporter{
		api:     api,
		notion:  notion,
		channel: channel,
	}
}

func (d *DigestReporter) Run(now time.Time) error {
	books, err := d.notion.QueryBooks()
	if err != nil {
		return fmt.Errorf("query archived books: %w", err)
	}

	start, end := digestRange(now)
	monthly := booksInRange(books, start, end)

	if _, _, err := d.api.PostMessage(d.channel, slack.MsgOptionText(statMessage(monthly), false)); err != nil {
		return fmt.Errorf("post digest: %w", err)
	}

	if len(monthly) == 0 {
		return nil
	}

	if _, _, err := d.api.PostMessage(d.channel, slack.MsgOptionText(bestRecommendersMessage(monthly, start.Month()), false)); err != nil {
		return fmt.Errorf("post best recommenders: %w", err)
	}

	return nil
}

// digestRange covers the reported month from its first day through
// yesterday, so a run in the early hours of the 1st reports the month
// that just ended.
func digestRange(now time.Time) (time.Time, time.Time) {
	yesterday := now.AddDate(0, 0, -1)
	start := time.Date(yesterday.Year(), yesterday.Month(), 1, 0, 0, 0, 0, now.Location())
	end := time.Date(yesterday.Year(), yesterday.Month(), yesterday.Day(), 23, 59, 59, 0, now.Location())
	return start, end
}

func booksInRange(books []ArchivedBook, start time.Time, end time.Time) []ArchivedBook {
	var selected []ArchivedBook
	for _, book := range books {
		if !book.CreatedAt.Before(start) && !book.CreatedAt.After(end) {
			selected = append(selected, book)
		}
	}
	return selected
}

func statMessage(books []ArchivedBook) string {
	lines := []string{fmt.Sprintf("📖 지난 한달 동안 북크북크에 %d권의 책이 모였어요 📖", len(books))}
	for _, book := range books {
		lines = append(lines, book.Title)
	}
	return strings.Join(lines, "\n")
}

// bestRecommendersMessage crowns whoever recommended the most books in
// the month; ties are all listed, in first-seen order.
func bestRecommendersMessage(books []ArchivedBook, month time.Month) string {
	counts := make(map[string]int)
	var order []string
	for _, book := range books {
		if _, seen := counts[book.Recommender]; !seen {
			order = append(order, book.Recommender)
		}
		counts[book.Recommender]++
	}

	most := 0
	for _, count := range counts {
		if count > most {
			most = count
		}
	}

	lines := []string{fmt.Sprintf("👑 %d월의 독서왕 👑", int(month))}
	for _, name := range order {
		if counts[name] == most {
			lines = append(lines, fmt.Sprintf("🎉🌟 %s 🌟🎉 (%d권)", name, counts[name]))
		}
	}
	return strings.Join(lines, "\n")
}
