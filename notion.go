package bookkbot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"
)

const (
	notionBaseURL = "https://api.notion.com"
	notionVersion = "2022-06-28"
)

// NotionClient creates archival pages in and reads them back from a
// single Notion database.
type NotionClient struct {
	secretKey  string
	databaseID string
	baseURL    string
	httpClient *http.Client
}

func NewNotionClient(secretKey string, databaseID string) *NotionClient {
	return &NotionClient{
		secretKey:  secretKey,
		databaseID: databaseID,
		baseURL:    notionBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Page creation payload. Property names mirror the database schema;
// "recommend reason" is spelled with a space there.

type pageParent struct {
	Type       string `json:"type"`
	DatabaseID string `json:"database_id"`
}

type textContent struct {
	Content string `json:"content"`
}

type richText struct {
	Type string      `json:"type"`
	Text textContent `json:"text"`
}

type titleProperty struct {
	Title []richText `json:"title"`
}

type urlProperty struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

type selectOption struct {
	Name string `json:"name"`
}

type multiSelectProperty struct {
	MultiSelect []selectOption `json:"multi_select"`
}

type richTextProperty struct {
	RichText []richText `json:"rich_text"`
}

type pageProperties struct {
	Title           titleProperty       `json:"title"`
	URL             urlProperty         `json:"URL"`
	Category        multiSelectProperty `json:"category"`
	Recommender     richTextProperty    `json:"recommender"`
	RecommendReason richTextProperty    `json:"recommend reason"`
}

type externalURL struct {
	URL string `json:"url"`
}

type imageValue struct {
	Type     string      `json:"type"`
	External externalURL `json:"external"`
}

type imageBlock struct {
	Object string     `json:"object"`
	Image  imageValue `json:"image"`
}

type pageRequest struct {
	Parent     pageParent     `json:"parent"`
	Properties pageProperties `json:"properties"`
	Children   []imageBlock   `json:"children"`
}

func newRichText(content string) []richText {
	return []richText{{Type: "text", Text: textContent{Content: content}}}
}

func (c *NotionClient) newPageRequest(book Book, meta PageMetadata) pageRequest {
	categories := []selectOption{{Name: book.Category}}
	if parent, ok := book.ParentCategory(); ok {
		categories = append(categories, selectOption{Name: parent})
	}

	return pageRequest{
		Parent: pageParent{Type: "database_id", DatabaseID: c.databaseID},
		Properties: pageProperties{
			Title:           titleProperty{Title: newRichText(meta.Title)},
			URL:             urlProperty{Type: "url", URL: book.BookstoreURL},
			Category:        multiSelectProperty{MultiSelect: categories},
			Recommender:     richTextProperty{RichText: newRichText(book.Recommender)},
			RecommendReason: richTextProperty{RichText: newRichText(book.RecommendReason)},
		},
		Children: []imageBlock{
			{Object: "block", Image: imageValue{Type: "external", External: externalURL{URL: meta.ImageURL}}},
		},
	}
}

// CreatePage archives one book, with its resolved metadata, as a new
// database page with a cover image child block.
func (c *NotionClient) CreatePage(book Book, meta PageMetadata) error {
	body, err := json.Marshal(c.newPageRequest(book, meta))
	if err != nil {
		return fmt.Errorf("encode page: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/v1/pages/", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create page request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := ioutil.ReadAll(resp.Body)
		return fmt.Errorf("unexpected response from Notion API server: %s", string(text))
	}

	return nil
}

// ArchivedBook is one stored recommendation read back for reporting.
type ArchivedBook struct {
	Title       string
	Recommender string
	CreatedAt   time.Time
}

type notionRichText struct {
	PlainText string      `json:"plain_text"`
	Text      textContent `json:"text"`
}

func (t notionRichText) content() string {
	if t.PlainText != "" {
		return t.PlainText
	}
	return t.Text.Content
}

type notionPageProperties struct {
	Title struct {
		Title []notionRichText `json:"title"`
	} `json:"title"`
	Recommender struct {
		RichText []notionRichText `json:"rich_text"`
	} `json:"recommender"`
}

type notionPage struct {
	CreatedTime time.Time            `json:"created_time"`
	Properties  notionPageProperties `json:"properties"`
}

type notionQueryRequest struct {
	StartCursor string `json:"start_cursor,omitempty"`
}

type notionQueryResponse struct {
	Results    []notionPage `json:"results"`
	HasMore    bool         `json:"has_more"`
	NextCursor string       `json:"next_cursor"`
}

// QueryBooks pages through the database and returns every archived book.
func (c *NotionClient) QueryBooks() ([]ArchivedBook, error) {
	var books []ArchivedBook
	cursor := ""

	for {
		page, err := c.queryPage(cursor)
		if err != nil {
			return nil, err
		}

		for _, result := range page.Results {
			book := ArchivedBook{CreatedAt: result.CreatedTime}
			if len(result.Properties.Title.Title) > 0 {
				book.Title = result.Properties.Title.Title[0].content()
			}
			if len(result.Properties.Recommender.RichText) > 0 {
				book.Recommender = result.Properties.Recommender.RichText[0].content()
			}
			books = append(books, book)
		}

		if !page.HasMore || page.NextCursor == "" {
			return books, nil
		}
		cursor = page.NextCursor
	}
}

func (c *NotionClient) queryPage(cursor string) (notionQueryResponse, error) {
	body, err := json.Marshal(notionQueryRequest{StartCursor: cursor})
	if err != nil {
		return notionQueryResponse{}, fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/v1/databases/"+c.databaseID+"/query", bytes.NewReader(body))
	if err != nil {
		return notionQueryResponse{}, fmt.Errorf("create query request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return notionQueryResponse{}, fmt.Errorf("query database: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := ioutil.ReadAll(resp.Body)
		return notionQueryResponse{}, fmt.Errorf("unexpected response from Notion API server: %s", string(text))
	}

	var page notionQueryResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return notionQueryResponse{}, fmt.Errorf("decode query response: %w", err)
	}

	return page, nil
}

func (c *NotionClient) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Notion-Version", notionVersion)
	req.Header.Set("Content-Type", "application/json")
}
