package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"pdpfeed/internal/config"
	"pdpfeed/internal/crawler"
	"pdpfeed/internal/db"
	"pdpfeed/internal/exporter"
	"pdpfeed/internal/model"
	"pdpfeed/internal/observability"
	"pdpfeed/internal/repository"
)

func init() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
	log.SetLevel(log.InfoLevel)
}

// go run cmd/export/main.go
// go run cmd/export/main.go -mode=clean
func main() {
	mode := flag.String("mode", "export", "Run mode: 'export' or 'clean'")
	links := flag.String("links", "", "Links file, one URL or saved page path per line (overrides LINKS_FILE)")
	output := flag.String("output", "", "Output feed file (overrides OUTPUT_FILE)")
	appendMode := flag.Bool("append", false, "Append to an existing feed file instead of overwriting")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	cfg := config.Load()
	if *links != "" {
		cfg.LinksFile = *links
	}
	if *output != "" {
		cfg.OutputFile = *output
	}

	if *mode == "clean" {
		if err := exporter.CleanFile(cfg.OutputFile); err != nil {
			log.WithError(err).Warnf("Could not clean %s", cfg.OutputFile)
		}
		return
	}

	if cfg.MetricsPort != "" {
		observability.Start(cfg.MetricsPort)
	}

	urls, err := readLinks(cfg.LinksFile)
	if err != nil {
		log.WithError(err).Warnf("Could not read links file %s", cfg.LinksFile)
		return
	}
	if len(urls) == 0 {
		log.Warn("No links to process")
		return
	}
	log.Infof("Found %d links to process", len(urls))

	var cache *crawler.PageCache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("Invalid REDIS_URL, page cache disabled")
		} else {
			cache = &crawler.PageCache{Client: redis.NewClient(opts)}
		}
	}

	var archive *repository.ArchiveRepository
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Warn("Could not connect to Postgres, page archive disabled")
		} else {
			defer pool.Close()
			archive = &repository.ArchiveRepository{DB: pool}
		}
	}

	fetcher := crawler.NewFetcher(cfg.RequestTimeout, cfg.UserAgent, cache)

	records := make([]*model.Record, 0, len(urls))
	for i, u := range urls {
		log.Infof("[%d/%d] Processing: %s", i+1, len(urls), u)

		rec, err := processOne(fetcher, archive, u, cfg.SiteOrigin)
		if err != nil {
			log.WithError(err).Warnf("Skipping %s", u)
			observability.PagesFailed.Inc()
			records = append(records, nil) // keeps output position aligned with input order
		} else {
			observability.PagesFetched.Inc()
			records = append(records, rec)
			log.Infof("Extracted: %s", rec.Name)
		}

		if i < len(urls)-1 {
			time.Sleep(cfg.RequestDelay)
		}
	}

	written, err := exporter.WriteFeed(records, cfg.OutputFile, *appendMode)
	if err != nil {
		log.WithError(err).Error("Failed to write feed")
		return
	}
	observability.RecordsExported.Add(float64(written))

	log.Infof("Done: %d/%d records written to %s", written, len(urls), cfg.OutputFile)
}

func processOne(fetcher *crawler.Fetcher, archive *repository.ArchiveRepository, link, siteOrigin string) (*model.Record, error) {
	html, err := fetcher.Fetch(link)
	if err != nil {
		return nil, err
	}

	data, err := crawler.Extract(html)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", link, err)
	}

	if archive != nil {
		err := archive.Save(model.RawPage{
			ID:        uuid.New().String(),
			ProductID: data.Product,
			SourceURL: link,
			HTML:      html,
		})
		if err != nil {
			log.WithError(err).Warnf("Could not archive %s", link)
		}
	}

	// Saved pages carry their own URL markers, so only pass real URLs through.
	pageURL := ""
	if strings.HasPrefix(link, "http://") || strings.HasPrefix(link, "https://") {
		pageURL = link
	}

	return crawler.BuildRecord(data, html, pageURL, siteOrigin), nil
}

func readLinks(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var links []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		links = append(links, line)
	}

	return links, scanner.Err()
}
