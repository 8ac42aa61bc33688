package scraper

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"
)

// Config captures every knob that influences a scrape run. All values
// originate from Viper so the tool can be configured via file, env vars, or
// CLI flags.
type Config struct {
	SitemapURL     string
	OutputPath     string
	Concurrency    int
	RequestTimeout time.Duration
	DelayMin       time.Duration
	DelayMax       time.Duration
	UserAgent      string
	OpsListenAddr  string
}

// LoadConfig constructs a Config by reading from Viper.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		SitemapURL:     v.GetString("scrape.sitemap_url"),
		OutputPath:     v.GetString("scrape.output_path"),
		Concurrency:    v.GetInt("scrape.concurrency"),
		RequestTimeout: v.GetDuration("scrape.request_timeout"),
		DelayMin:       v.GetDuration("scrape.delay_min"),
		DelayMax:       v.GetDuration("scrape.delay_max"),
		UserAgent:      v.GetString("scrape.user_agent"),
		OpsListenAddr:  v.GetString("ops.listen_addr"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if c.SitemapURL == "" {
		return fmt.Errorf("scrape.sitemap_url must be set")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("scrape.output_path must be set")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("scrape.concurrency must be > 0")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("scrape.request_timeout must be > 0")
	}
	if c.DelayMin < 0 {
		return fmt.Errorf("scrape.delay_min must be >= 0")
	}
	if c.DelayMax < c.DelayMin {
		return fmt.Errorf("scrape.delay_max must be >= scrape.delay_min")
	}
	return nil
}

// Headers returns the browser-like header set sent on every request. The
// fixed values reduce trivial bot-blocking on blog hosts.
func (c Config) Headers() http.Header {
	h := http.Header{}
	if c.UserAgent != "" {
		h.Set("User-Agent", c.UserAgent)
	}
	h.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,image/apng,*/*;q=0.8")
	h.Set("Accept-Language", "en-US,en;q=0.9")
	h.Set("Connection", "keep-alive")
	return h
}
