package scraper

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	v.Set("scrape.sitemap_url", "https://blog.example/sitemap.xml")
	v.Set("scrape.output_path", "out.csv")
	v.Set("scrape.concurrency", 10)
	v.Set("scrape.request_timeout", "20s")
	v.Set("scrape.delay_min", "500ms")
	v.Set("scrape.delay_max", "1500ms")
	v.Set("scrape.user_agent", "test-agent")
	return v
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(newTestViper())
	require.NoError(t, err)
	require.Equal(t, "https://blog.example/sitemap.xml", cfg.SitemapURL)
	require.Equal(t, 10, cfg.Concurrency)
	require.Equal(t, 20*time.Second, cfg.RequestTimeout)
	require.Equal(t, 500*time.Millisecond, cfg.DelayMin)
	require.Equal(t, 1500*time.Millisecond, cfg.DelayMax)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*viper.Viper)
		wantErr string
	}{
		{"missing sitemap", func(v *viper.Viper) { v.Set("scrape.sitemap_url", "") }, "sitemap_url"},
		{"missing output", func(v *viper.Viper) { v.Set("scrape.output_path", "") }, "output_path"},
		{"zero concurrency", func(v *viper.Viper) { v.Set("scrape.concurrency", 0) }, "concurrency"},
		{"negative concurrency", func(v *viper.Viper) { v.Set("scrape.concurrency", -2) }, "concurrency"},
		{"zero timeout", func(v *viper.Viper) { v.Set("scrape.request_timeout", "0s") }, "request_timeout"},
		{"negative delay", func(v *viper.Viper) { v.Set("scrape.delay_min", "-1s") }, "delay_min"},
		{"inverted delay range", func(v *viper.Viper) { v.Set("scrape.delay_max", "100ms") }, "delay_max"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := newTestViper()
			tc.mutate(v)
			_, err := LoadConfig(v)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestConfigHeaders(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(newTestViper())
	require.NoError(t, err)

	h := cfg.Headers()
	require.Equal(t, "test-agent", h.Get("User-Agent"))
	require.Equal(t, "en-US,en;q=0.9", h.Get("Accept-Language"))
	require.Equal(t, "keep-alive", h.Get("Connection"))
	require.NotEmpty(t, h.Get("Accept"))
}
