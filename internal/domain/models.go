package domain

import "strings"

// Domain contains core models and interfaces.

// dateSeparator splits the date from the time in publication timestamps
// such as "2018-03-13T19:53:59Z".
const dateSeparator = "T"

// Article is a single decoded news item. All fields are always populated.
type Article struct {
	Section     string `json:"section"`
	Title       string `json:"title"`
	PublishedAt string `json:"published_at"`
	URL         string `json:"url"`
}

// Date returns the date portion of PublishedAt, i.e. everything before the first "T".
func (a Article) Date() string {
	date, _, _ := strings.Cut(a.PublishedAt, dateSeparator)
	return date
}

// FetchStatus classifies the outcome of one fetch.
type FetchStatus int

const (
	StatusSuccess FetchStatus = iota
	StatusEmpty
	StatusTransientFailure
	StatusPermanentFailure
	StatusOffline
)

func (s FetchStatus) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusEmpty:
		return "empty"
	case StatusTransientFailure:
		return "transient_failure"
	case StatusPermanentFailure:
		return "permanent_failure"
	case StatusOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// FetchResult is what a load hands to the display layer.
type FetchResult struct {
	Status   FetchStatus
	Articles []Article
	Err      error
}

// Failed reports whether the fetch ended in any failure kind, offline included.
func (r FetchResult) Failed() bool {
	switch r.Status {
	case StatusTransientFailure, StatusPermanentFailure, StatusOffline:
		return true
	default:
		return false
	}
}

// NewFetchResult builds a success or empty result from decoded articles.
func NewFetchResult(articles []Article) FetchResult {
	if len(articles) == 0 {
		return FetchResult{Status: StatusEmpty}
	}
	return FetchResult{Status: StatusSuccess, Articles: articles}
}

// FailedResult builds a failure result. Failures never carry articles.
func FailedResult(status FetchStatus, err error) FetchResult {
	return FetchResult{Status: status, Err: err}
}
