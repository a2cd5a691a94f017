package courtlistener

import "time"

const (
	// DefaultBaseURL is the CourtListener REST API root.
	DefaultBaseURL = "https://www.courtlistener.com/api/rest/v4/"

	// DefaultCourt is the court identifier for the Supreme Court of the
	// United States.
	DefaultCourt = "scotus"

	// DefaultPageSize is the page size requested from the listing endpoint.
	DefaultPageSize = 20

	// UserAgent identifies this client to the API.
	UserAgent = "docket-cli/1.0"
)

// Config holds the settings for a CourtListener client.
// The zero value selects the defaults for tracking the Supreme Court.
type Config struct {
	// BaseURL is the API root, ending in a slash.
	BaseURL string

	// Court restricts listings to one court's opinions.
	Court string

	// PageSize is the number of records requested per listing page.
	// Pagination is followed regardless, so this only tunes request count.
	PageSize int

	// Timeout bounds each individual HTTP request.
	Timeout time.Duration
}

// withDefaults fills unset fields with the package defaults.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Court == "" {
		c.Court = DefaultCourt
	}
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return c
}
