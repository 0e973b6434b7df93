package bookkbot

import (
	"net/url"
	"regexp"
	"strings"
)

// Permissive URL shape: optional scheme (with or without www.), labeled
// domain, optional port, optional path/query.
var linkPattern = regexp.MustCompile(
	`^(http://www\.|https://www\.|http://|https://)?[a-z0-9]+([-.][a-z0-9]+)*\.[a-z]{2,5}(:[0-9]{1,5})?(/.*)?$`,
)

// Storefronts whose product pages expose usable link-preview metadata.
var bookstoreDomains = []string{"ridibooks.com", "yes24.com"}

// BookSubmission is the raw user-entered payload of a dialog submission.
type BookSubmission struct {
	Category        string
	BookstoreURL    string
	RecommendReason string
}

func newBookSubmission(fields map[string]string) (BookSubmission, error) {
	submission := BookSubmission{
		Category:        fields["category"],
		BookstoreURL:    fields["bookstore_url"],
		RecommendReason: fields["recommend_reason"],
	}
	if submission.Category == "" {
		return BookSubmission{}, &DeserializationError{Field: "category"}
	}
	if submission.BookstoreURL == "" {
		return BookSubmission{}, &DeserializationError{Field: "bookstore_url"}
	}
	if submission.RecommendReason == "" {
		return BookSubmission{}, &DeserializationError{Field: "recommend_reason"}
	}
	return submission, nil
}

// Book is the record handed to archival once the recommender is known.
type Book struct {
	Category        string
	BookstoreURL    string
	RecommendReason string
	Recommender     string
}

func (b Book) ParentCategory() (string, bool) {
	return parentCategory(b.Category)
}

// normalizeLink validates the URL shape and returns the trimmed link.
// It never touches its input; callers rebind.
func normalizeLink(raw string) (string, error) {
	if !linkPattern.MatchString(raw) {
		return "", ErrInvalidLink
	}
	return strings.TrimSpace(raw), nil
}

// supportsMetadataLookup reports whether the link points at a storefront
// the metadata lookup can resolve. Scheme-less links land in the path of
// a parsed URL, so both host and path are checked.
func supportsMetadataLookup(link string) bool {
	parsed, err := url.Parse(link)
	if err != nil {
		return false
	}
	for _, domain := range bookstoreDomains {
		if strings.Contains(parsed.Host, domain) || strings.Contains(parsed.Path, domain) {
			return true
		}
	}
	return false
}
