// Package rates provides the EUR/USD exchange rate used to derive missing
// card prices. Rates come from exchangerate.host and are cached in a small
// JSON file next to the registry, so that repeated runs within a few hours
// never hit the network.
package rates

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/cardvault/cardvault"
	"github.com/shopspring/decimal"
)

const defaultBaseURL = "https://api.exchangerate.host"

// TokenEnv is the environment variable holding the exchangerate.host access
// key.
const TokenEnv = "EXCHANGERATES_API_TOKEN"

// maxAge is how long a cached rate stays fresh.
const maxAge = 10368 * time.Second

// Provider fetches the EUR/USD rate, caching it on disk. It implements
// cardvault.RateSource. When the API is unreachable the last known rate is
// served, however stale.
type Provider struct {
	cacheFile string
	token     string
	base      string

	now func() time.Time
}

// NewProvider returns a provider caching into cacheFile, reading its access
// key from the TokenEnv environment variable.
func NewProvider(cacheFile string) *Provider {
	return &Provider{
		cacheFile: cacheFile,
		token:     os.Getenv(TokenEnv),
		base:      defaultBaseURL,
		now:       time.Now,
	}
}

// cached is the on-disk cache layout.
type cached struct {
	EURToUSD  decimal.Decimal `json:"eur_to_usd"`
	USDToEUR  decimal.Decimal `json:"usd_to_eur"`
	Timestamp int64           `json:"timestamp"`
}

// Rate returns the current EUR/USD rate pair, from cache when fresh.
func (p *Provider) Rate() (cardvault.Rate, error) {
	c, ok := p.load()
	if ok && p.now().Unix()-c.Timestamp < int64(maxAge.Seconds()) {
		return cardvault.Rate{EURToUSD: c.EURToUSD, USDToEUR: c.USDToEUR}, nil
	}

	eur2usd, err := p.fetch()
	if err != nil {
		if ok {
			log.Printf("warning, cannot refresh exchange rates (%v), using rate from %s", err, time.Unix(c.Timestamp, 0).Format("2006-01-02 15:04"))
			return cardvault.Rate{EURToUSD: c.EURToUSD, USDToEUR: c.USDToEUR}, nil
		}
		return cardvault.Rate{}, fmt.Errorf("fetching exchange rates: %w", err)
	}

	rate := cardvault.Rate{
		EURToUSD: eur2usd,
		USDToEUR: decimal.NewFromInt(1).Div(eur2usd),
	}
	p.store(cached{EURToUSD: rate.EURToUSD, USDToEUR: rate.USDToEUR, Timestamp: p.now().Unix()})
	return rate, nil
}

/*
	{
	    "success": true,
	    "base": "EUR",
	    "date": "2024-05-17",
	    "rates": {
	        "USD": 1.0867
	    }
	}
*/
func (p *Provider) fetch() (decimal.Decimal, error) {
	addr := p.base + "/latest?symbols=USD&access_key=" + url.QueryEscape(p.token)

	var jobj any
	if err := jwget(new(http.Client), addr, &jobj); err != nil {
		return decimal.Decimal{}, err
	}
	path := "$.rates.USD"
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("error parsing %q: %q %w", "EUR/USD", path, err)
	}
	// jsonpath is never clear about whether it returns a list of 1 answer or
	// a single answer; keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok || val <= 0 {
		return decimal.Decimal{}, fmt.Errorf("error parsing %q: %q not a positive float: %v", "EUR/USD", path, jval)
	}
	return decimal.NewFromFloat(val), nil
}

func (p *Provider) load() (cached, bool) {
	content, err := os.ReadFile(p.cacheFile)
	if err != nil {
		return cached{}, false
	}
	var c cached
	if err := json.Unmarshal(content, &c); err != nil {
		log.Printf("warning, unreadable rate cache %q (ignored): %v", p.cacheFile, err)
		return cached{}, false
	}
	if c.EURToUSD.IsZero() {
		return cached{}, false
	}
	return c, true
}

func (p *Provider) store(c cached) {
	content, err := json.MarshalIndent(c, "", "  ")
	if err == nil {
		err = os.WriteFile(p.cacheFile, content, 0644)
	}
	if err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
}
