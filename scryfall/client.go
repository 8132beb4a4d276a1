package scryfall

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const defaultBaseURL = "https://api.scryfall.com"

// minInterval is the delay the catalog asks callers to keep between requests.
const minInterval = 100 * time.Millisecond

// batchSize is the maximum number of identifiers per collection request.
const batchSize = 75

// Client talks to the card catalog. It is not safe for concurrent use.
type Client struct {
	base string

	last  time.Time
	now   func() time.Time
	sleep func(time.Duration)
}

// NewClient returns a catalog client against the public API.
func NewClient() *Client {
	return &Client{
		base:  defaultBaseURL,
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// pace enforces the fixed inter-request delay.
func (c *Client) pace() {
	if !c.last.IsZero() {
		if d := minInterval - c.now().Sub(c.last); d > 0 {
			c.sleep(d)
		}
	}
	c.last = c.now()
}

// SearchByName returns the catalog's ranked candidates for a free-text
// query. A query with no match returns an empty slice, not an error.
func (c *Client) SearchByName(query string) ([]Card, error) {
	addr := c.base + "/cards/search?q=" + url.QueryEscape(query)

	var content struct {
		TotalCards int    `json:"total_cards"`
		Data       []Card `json:"data"`
	}
	c.pace()
	err := jwget(liveClient(), addr, &content)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}
	return content.Data, nil
}

// PrintsByURI walks a card's paginated prints listing and returns every
// printing, optionally filtered by short set code.
func (c *Client) PrintsByURI(uri, setFilter string) ([]Card, error) {
	var prints []Card
	for uri != "" {
		var content struct {
			Data     []Card `json:"data"`
			HasMore  bool   `json:"has_more"`
			NextPage string `json:"next_page"`
		}
		c.pace()
		if err := jwget(dailyCachingClient(), uri, &content); err != nil {
			return nil, fmt.Errorf("fetching prints: %w", err)
		}
		for _, card := range content.Data {
			if setFilter != "" && card.Set != setFilter {
				continue
			}
			prints = append(prints, card)
		}
		uri = ""
		if content.HasMore {
			uri = content.NextPage
		}
	}
	return prints, nil
}

// ByID fetches a single catalog record by its UUID.
func (c *Client) ByID(id string) (Card, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Card{}, fmt.Errorf("invalid catalog id %q: %w", id, err)
	}
	var card Card
	c.pace()
	if err := jwget(dailyCachingClient(), c.base+"/cards/"+id, &card); err != nil {
		return Card{}, fmt.Errorf("fetching card %s: %w", id, err)
	}
	return card, nil
}

// Batch fetches catalog records for a list of UUIDs, batchSize at a time.
// Identifiers the catalog does not know (and identifiers that are not UUIDs
// at all) come back in notFound; they never fail the call.
func (c *Client) Batch(ids []string) (cards []Card, notFound []string, err error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := uuid.Parse(id); err != nil {
			notFound = append(notFound, id)
			continue
		}
		valid = append(valid, id)
	}

	for start := 0; start < len(valid); start += batchSize {
		end := min(start+batchSize, len(valid))

		type identifier struct {
			ID string `json:"id"`
		}
		payload := struct {
			Identifiers []identifier `json:"identifiers"`
		}{}
		for _, id := range valid[start:end] {
			payload.Identifiers = append(payload.Identifiers, identifier{ID: id})
		}

		var content struct {
			Data     []Card       `json:"data"`
			NotFound []identifier `json:"not_found"`
		}
		c.pace()
		if err := jwpost(liveClient(), c.base+"/cards/collection", payload, &content); err != nil {
			return nil, nil, fmt.Errorf("fetching card batch: %w", err)
		}
		cards = append(cards, content.Data...)
		for _, nf := range content.NotFound {
			notFound = append(notFound, nf.ID)
		}
	}
	return cards, notFound, nil
}
