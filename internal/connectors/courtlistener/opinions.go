package courtlistener

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/custodia-labs/docket-cli/internal/core/domain"
	"github.com/custodia-labs/docket-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docket-cli/internal/logger"
)

// Ensure Client implements the OpinionSource interface.
var _ driven.OpinionSource = (*Client)(nil)

// ListRecent returns opinions filed within the trailing window of windowDays
// days, following cursor pagination until the listing is exhausted. Order is
// the API's listing order, most recently filed first.
func (c *Client) ListRecent(ctx context.Context, windowDays int) ([]domain.Opinion, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -windowDays).Format(time.DateOnly)

	params := url.Values{}
	params.Set("court", c.cfg.Court)
	params.Set("date_filed__gte", cutoff)
	params.Set("order_by", "-date_filed")
	params.Set("page_size", strconv.Itoa(c.cfg.PageSize))

	next := c.cfg.BaseURL + "opinions/?" + params.Encode()
	webRoot := c.webRoot()

	var all []domain.Opinion
	for page := 1; next != ""; page++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		body, err := c.get(ctx, next)
		if err != nil {
			return nil, fmt.Errorf("list opinions: %w", err)
		}

		var listing listResponse
		if err := json.Unmarshal(body, &listing); err != nil {
			return nil, fmt.Errorf("decode listing page %d: %w", page, err)
		}

		logger.Debug("Listing page %d: %d opinions", page, len(listing.Results))
		for i := range listing.Results {
			all = append(all, *listing.Results[i].toDomain(webRoot))
		}
		next = listing.Next
	}

	return all, nil
}

// GetOpinion fetches one opinion's detail record, which carries the text
// fields the listing omits.
func (c *Client) GetOpinion(ctx context.Context, id int64) (*domain.Opinion, error) {
	body, err := c.get(ctx, fmt.Sprintf("%sopinions/%d/", c.cfg.BaseURL, id))
	if err != nil {
		return nil, fmt.Errorf("get opinion %d: %w", id, err)
	}

	var record opinionJSON
	if err := json.Unmarshal(body, &record); err != nil {
		return nil, fmt.Errorf("decode opinion %d: %w", id, err)
	}
	return record.toDomain(c.webRoot()), nil
}

// Validate checks that the API is reachable and accepts the configured
// credential by requesting a minimal listing page.
func (c *Client) Validate(ctx context.Context) error {
	params := url.Values{}
	params.Set("court", c.cfg.Court)
	params.Set("page_size", "1")

	if _, err := c.get(ctx, c.cfg.BaseURL+"opinions/?"+params.Encode()); err != nil {
		return fmt.Errorf("validate credentials: %w", err)
	}
	return nil
}

// webRoot returns the scheme and host of the configured API base URL, used
// to absolutize the relative page URLs the API returns.
func (c *Client) webRoot() string {
	u, err := url.Parse(c.cfg.BaseURL)
	if err != nil {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
