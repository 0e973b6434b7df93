package bookkbot

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const openGraphBaseURL = "https://opengraph.io/api/1.1/site/"

// PageMetadata is the subset of link-preview metadata archival needs.
type PageMetadata struct {
	Title    string
	ImageURL string
}

type openGraphImage struct {
	URL string `json:"url"`
}

type openGraphTags struct {
	Title string          `json:"title"`
	Image *openGraphImage `json:"image"`
}

type openGraphResponse struct {
	OpenGraph *openGraphTags `json:"openGraph"`
}

// OpenGraphClient resolves a URL to its link-preview title and image via
// the opengraph.io API.
type OpenGraphClient struct {
	appID      string
	baseURL    string
	httpClient *http.Client
}

func NewOpenGraphClient(appID string) *OpenGraphClient {
	return &OpenGraphClient{
		appID:   appID,
		baseURL: openGraphBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

func (c *OpenGraphClient) Lookup(link string) (PageMetadata, error) {
	query := url.Values{}
	query.Set("app_id", c.appID)

	resp, err := c.httpClient.Get(c.baseURL + url.QueryEscape(link) + "?" + query.Encode())
	if err != nil {
		return PageMetadata{}, fmt.Errorf("opengraph lookup: %w", err)
	}
	defer resp.Body.Close()

	var body openGraphResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return PageMetadata{}, fmt.Errorf("opengraph lookup: %w", err)
	}

	if body.OpenGraph == nil {
		return PageMetadata{}, &DeserializationError{Field: "openGraph"}
	}
	if body.OpenGraph.Title == "" {
		return PageMetadata{}, &DeserializationError{Field: "openGraph.title"}
	}
	if body.OpenGraph.Image == nil || body.OpenGraph.Image.URL == "" {
		return PageMetadata{}, &DeserializationError{Field: "openGraph.image.url"}
	}

	return PageMetadata{
		Title:    body.OpenGraph.Title,
		ImageURL: body.OpenGraph.Image.URL,
	}, nil
}
