package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kitsunelab/blogmap/internal/clock/system"
	"github.com/kitsunelab/blogmap/internal/extract"
	collyfetcher "github.com/kitsunelab/blogmap/internal/fetcher/colly"
	"github.com/kitsunelab/blogmap/internal/id/runid"
	"github.com/kitsunelab/blogmap/internal/ops"
	"github.com/kitsunelab/blogmap/internal/progress"
	"github.com/kitsunelab/blogmap/internal/scraper"
	csvsink "github.com/kitsunelab/blogmap/internal/sink/csv"
	"github.com/kitsunelab/blogmap/internal/sitemap"
)

// newScrapeCmd creates and configures the 'scrape' subcommand.
func newScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Runs one full sitemap-to-CSV scrape",
		Long: `Fetches the configured sitemap, scrapes every listed post concurrently
(bounded by scrape.concurrency, with a random politeness delay per request),
and writes one CSV row per post that yielded outbound links.`,

		RunE: runScrapeCommand,
	}

	cmd.Flags().String("sitemap", "", "Sitemap URL to scrape")
	cmd.Flags().String("output", "", "Output CSV path")
	cmd.Flags().Int("concurrency", 0, "Maximum concurrent page fetches")
	_ = viper.BindPFlag("scrape.sitemap_url", cmd.Flags().Lookup("sitemap"))
	_ = viper.BindPFlag("scrape.output_path", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("scrape.concurrency", cmd.Flags().Lookup("concurrency"))

	return cmd
}

func runScrapeCommand(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := scraper.LoadConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	id, err := runid.New()
	if err != nil {
		return fmt.Errorf("new run id: %w", err)
	}
	logger := zap.L().With(zap.String("run_id", id))

	registry := prometheus.NewRegistry()
	tracker, err := progress.NewTracker(registry, logger, id)
	if err != nil {
		return fmt.Errorf("init progress tracker: %w", err)
	}

	if cfg.OpsListenAddr != "" {
		opsServer := ops.NewServer(cfg.OpsListenAddr, registry, logger)
		opsServer.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := opsServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn("ops server shutdown failed", zap.Error(err))
			}
		}()
	}

	fetcher := collyfetcher.New(collyfetcher.Config{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.RequestTimeout,
		Headers:   cfg.Headers(),
	})
	clk := system.New()
	start := clk.Now()

	urls, err := sitemap.NewLoader(fetcher, logger).Load(ctx, cfg.SitemapURL)
	if err != nil {
		// Non-fatal: an unreachable or malformed sitemap means there is no
		// work to do. No output file is written.
		logger.Warn("sitemap load failed; nothing to do", zap.Error(err))
		logSummary(logger, clk.Now().Sub(start), 0, 0, cfg.OutputPath)
		return nil
	}
	if len(urls) == 0 {
		logger.Warn("sitemap contained no URLs; nothing to do")
		logSummary(logger, clk.Now().Sub(start), 0, 0, cfg.OutputPath)
		return nil
	}

	logger.Info("starting scrape",
		zap.Int("posts", len(urls)),
		zap.Int("concurrency", cfg.Concurrency),
	)

	sched := scraper.NewScheduler(cfg, fetcher, scraper.ExtractorFunc(extract.Page), tracker, clk, logger)
	tracker.Start(len(urls), 0)
	outcomes := sched.Run(ctx, urls)
	tracker.Stop()

	records := scraper.Records(outcomes)
	if len(records) > 0 {
		if err := csvsink.New(cfg.OutputPath, logger).Write(records); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
	} else {
		logger.Info("no posts yielded links; output file not written")
	}

	logSummary(logger, clk.Now().Sub(start), len(records), len(urls), cfg.OutputPath)
	return nil
}

func logSummary(logger *zap.Logger, elapsed time.Duration, succeeded, total int, outputPath string) {
	logger.Info("scrape complete",
		zap.Float64("elapsed_seconds", elapsed.Seconds()),
		zap.Int("succeeded", succeeded),
		zap.Int("total", total),
		zap.String("output", outputPath),
	)
}
