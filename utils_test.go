package bookkbot

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gavv/httpexpect/v2"
	"github.com/gin-gonic/gin"
	"github.com/slack-go/slack"
)

func getHttpExpect(t *testing.T, engine *gin.Engine) *httpexpect.Expect {
	return httpexpect.WithConfig(httpexpect.Config{
		Client: &http.Client{
			Transport: httpexpect.NewBinder(engine),
			Jar:       httpexpect.NewJar(),
		},
		Reporter: httpexpect.NewAssertReporter(t),
		Printers: []httpexpect.Printer{
			httpexpect.NewDebugPrinter(t, true),
		},
	})
}

func testConfig() Config {
	return Config{
		ListenAddr:         ":8000",
		SlackAPIToken:      "token",
		SlackSigningSecret: "e6b19c573432dcc6b075501d51b51bb8",
		OGAppID:            "og-app-id",
		BooksChannel:       "C1AB2C3DE",
		NotionSecretKey:    "notion-secret",
		NotionDatabaseID:   "notion-db",
		ArchiveQueueSize:   4,
	}
}

func newBot() *Bot {
	return NewBot(testConfig())
}

func newBotWithSlack(f *fakeSlack) *Bot {
	bot := newBot()
	bot.SetAPI(slack.New("token", slack.OptionAPIURL(f.URL+"/")))
	return bot
}

const profileSuccessResponse = `{
	"ok": true,
	"profile": {
		"status_text": "Print is dead",
		"status_emoji": ":books:",
		"real_name": "Egon Spengler",
		"display_name": "spengler",
		"real_name_normalized": "Egon Spengler",
		"display_name_normalized": "spengler",
		"email": "spengler@ghostbusters.example.com",
		"team": "T012AB3C4"
	}
}`

// fakeSlack stands in for the Slack Web API, recording every call so
// tests can assert which collaborators were (not) reached.
type fakeSlack struct {
	*httptest.Server

	mu sync.Mutex

	dialogResponse  string
	profileResponse string
	postResponse    string

	dialogCalls  int
	profileCalls int
	postCalls    int

	dialogs     []string
	lastUser    string
	lastChannel string
	lastText    string
}

func newFakeSlack() *fakeSlack {
	f := &fakeSlack{
		dialogResponse:  `{"ok": true}`,
		profileResponse: profileSuccessResponse,
		postResponse:    `{"ok": true}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/dialog.open", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.dialogCalls++
		// slack-go sends dialog.open as a JSON body, not form-encoded.
		var req struct {
			Dialog json.RawMessage `json:"dialog"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		f.dialogs = append(f.dialogs, string(req.Dialog))
		writeSlackResponse(w, f.dialogResponse)
	})
	mux.HandleFunc("/users.profile.get", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.profileCalls++
		f.lastUser = r.FormValue("user")
		writeSlackResponse(w, f.profileResponse)
	})
	mux.HandleFunc("/chat.postMessage", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.postCalls++
		f.lastChannel = r.FormValue("channel")
		f.lastText = r.FormValue("text")
		writeSlackResponse(w, f.postResponse)
	})

	f.Server = httptest.NewServer(mux)
	return f
}

func writeSlackResponse(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

const (
	testCategory        = "경제일반"
	testRecommendReason = "죽도록 일해서 돈을 벌고, 아끼고, 모으는 것만으로는 절대 젊어서 부자가 될 수 없다고 말한다."
	testRecommender     = "Egon Spengler"
)

// submitBookPayload mirrors the payload Slack sends on dialog submission.
func submitBookPayload(bookstoreURL string) string {
	payload, _ := json.Marshal(map[string]interface{}{
		"type": "dialog_submission",
		"submission": map[string]string{
			"category":         testCategory,
			"bookstore_url":    bookstoreURL,
			"recommend_reason": testRecommendReason,
		},
		"callback_id":  "bookk-bookk",
		"state":        "Limo",
		"team":         map[string]string{"id": "T1ABCD2E12", "domain": "coverbands"},
		"user":         map[string]string{"id": "W12A3BCDEF", "name": "dreamweaver"},
		"channel":      map[string]string{"id": "C1AB2C3DE", "name": "coverthon-1999"},
		"action_ts":    "936893340.702759",
		"token":        "M1AqUUw3FqayAbqNtsGMch72",
		"response_url": "https://hooks.slack.com/app/T012AB0A1/123456789/JpmK0yzoZDeRiqfeduTBYXWQ",
	})
	return string(payload)
}

// pendingBooks drains whatever the handler scheduled for archival.
func pendingBooks(bot *Bot) []Book {
	var books []Book
	for {
		select {
		case book := <-bot.archiver.queue:
			books = append(books, book)
		default:
			return books
		}
	}
}
