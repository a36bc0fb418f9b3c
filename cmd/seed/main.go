package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/debug"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/velo-ui/knowledge/internal/component"
	"github.com/velo-ui/knowledge/internal/config"
	"github.com/velo-ui/knowledge/internal/database"
	"github.com/velo-ui/knowledge/internal/models"
	"github.com/velo-ui/knowledge/internal/repository"
	"github.com/velo-ui/knowledge/internal/seeder"
	"github.com/velo-ui/knowledge/pkg/utils"
)

// PageConfig describes one documentation page to ingest.
type PageConfig struct {
	Component string
	Category  string
	Path      string // path under the docs base URL
	Priority  int    // higher priority pages are processed first
}

// ContentSeeder scrapes documentation pages and seeds the corpus.
type ContentSeeder struct {
	collector   *colly.Collector
	processor   *seeder.ContentProcessor
	repoManager *repository.RepositoryManager
	cache       *database.Cache
	logger      *logrus.Logger
	baseURL     string
	processed   map[string]bool
	errors      []error
}

var componentPages = []PageConfig{
	{Component: "Button", Category: "actions", Path: "/components/actions/button/usage", Priority: 10},
	{Component: "Text Field", Category: "forms", Path: "/components/forms/text-field/usage", Priority: 10},
	{Component: "Select", Category: "forms", Path: "/components/forms/select/usage", Priority: 9},
	{Component: "Checkbox", Category: "forms", Path: "/components/forms/checkbox/usage", Priority: 9},
	{Component: "Radio Button", Category: "forms", Path: "/components/forms/radio-button/usage", Priority: 9},
	{Component: "Form", Category: "forms", Path: "/components/forms/form/usage", Priority: 8},
	{Component: "Modal", Category: "overlays", Path: "/components/overlays/modal/usage", Priority: 7},
	{Component: "Tooltip", Category: "overlays", Path: "/components/overlays/tooltip/usage", Priority: 6},
	{Component: "Accordion", Category: "layout", Path: "/components/layout/accordion/usage", Priority: 6},
	{Component: "Tabs", Category: "layout", Path: "/components/layout/tabs/usage", Priority: 6},
	{Component: "Card", Category: "layout", Path: "/components/layout/card/usage", Priority: 5},
	{Component: "Alert", Category: "feedback", Path: "/components/feedback/alert/usage", Priority: 5},
}

var (
	dryRun     = flag.Bool("dry-run", false, "Don't write to the database, just report what would be stored")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	pageLimit  = flag.Int("limit", 0, "Limit number of pages to process (0 = all)")
	concurrent = flag.Int("concurrent", 2, "Number of concurrent requests")
	delay      = flag.Duration("delay", time.Second, "Delay between requests")
	flushCache = flag.Bool("flush-cache", false, "Flush the whole redis cache after seeding")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	logger := utils.GetLogger()
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.Info("Starting documentation seeder...")

	cfg, err := config.Load()
	if err != nil {
		logger.WithError(err).Fatal("Failed to load configuration")
	}

	var repoManager *repository.RepositoryManager
	var cache *database.Cache
	if !*dryRun {
		dbConfig := &database.Config{
			DatabaseURL: cfg.Database.URL,
			RedisURL:    cfg.Redis.URL,
			LogLevel:    os.Getenv("LOG_LEVEL"),
		}

		dbManager, err := database.NewManager(dbConfig, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to initialize database manager")
		}
		defer dbManager.Close()

		if err := dbManager.Migrate(); err != nil {
			logger.WithError(err).Fatal("Migration failed")
		}

		repoManager = repository.NewRepositoryManager(dbManager.DB)
		cache = database.NewCache(dbManager.Redis, logger)
	}

	cs := NewContentSeeder(cfg, repoManager, cache, logger)
	if err := cs.SeedContent(); err != nil {
		logger.WithError(err).Fatal("Content seeding failed")
	}

	logger.Info("Content seeding completed")
}

func NewContentSeeder(cfg *config.Config, repoManager *repository.RepositoryManager, cache *database.Cache, logger *logrus.Logger) *ContentSeeder {
	c := colly.NewCollector(
		colly.UserAgent(cfg.Docs.UserAgent),
	)

	if *verbose {
		c.SetDebugger(&debug.LogDebugger{})
	}

	c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: *concurrent,
		Delay:       *delay,
	})
	c.SetRequestTimeout(30 * time.Second)

	return &ContentSeeder{
		collector:   c,
		processor:   seeder.NewContentProcessor(),
		repoManager: repoManager,
		cache:       cache,
		logger:      logger,
		baseURL:     strings.TrimRight(cfg.Docs.BaseURL, "/"),
		processed:   make(map[string]bool),
		errors:      make([]error, 0),
	}
}

func (cs *ContentSeeder) SeedContent() error {
	pages := make([]PageConfig, len(componentPages))
	copy(pages, componentPages)

	// Sort by priority, highest first.
	for i := 0; i < len(pages)-1; i++ {
		for j := i + 1; j < len(pages); j++ {
			if pages[i].Priority < pages[j].Priority {
				pages[i], pages[j] = pages[j], pages[i]
			}
		}
	}

	if *pageLimit > 0 && *pageLimit < len(pages) {
		pages = pages[:*pageLimit]
		cs.logger.WithField("limit", *pageLimit).Info("Limited pages to process")
	}

	cs.logger.WithField("total_pages", len(pages)).Info("Processing documentation pages")

	for i, page := range pages {
		cs.logger.WithFields(logrus.Fields{
			"component": page.Component,
			"progress":  fmt.Sprintf("%d/%d", i+1, len(pages)),
		}).Info("Processing page")

		if err := cs.processPage(page); err != nil {
			cs.logger.WithError(err).WithField("component", page.Component).Error("Failed to process page")
			cs.errors = append(cs.errors, fmt.Errorf("failed to process %s: %w", page.Component, err))
			continue
		}

		cs.processed[page.Component] = true
	}

	cs.logger.WithFields(logrus.Fields{
		"processed": len(cs.processed),
		"errors":    len(cs.errors),
	}).Info("Seeding pass finished")

	for _, err := range cs.errors {
		cs.logger.WithError(err).Warn("Processing error")
	}

	if *flushCache && cs.cache != nil {
		if err := cs.cache.ClearAll(context.Background()); err != nil {
			cs.logger.WithError(err).Warn("Failed to flush cache")
		} else {
			cs.logger.Info("Cache flushed")
		}
	}

	return nil
}

func (cs *ContentSeeder) processPage(page PageConfig) error {
	pageURL := cs.baseURL + page.Path

	var doc *models.Document
	var processingError error

	// Clone per page so handlers don't accumulate across visits.
	c := cs.collector.Clone()

	c.OnHTML("main, article, #content", func(e *colly.HTMLElement) {
		if doc != nil {
			return
		}

		content := cs.processor.CleanContent(e.DOM.Text())
		markup, _ := e.DOM.Html()
		identity, _ := component.Resolve(page.Component)

		doc = &models.Document{
			URL:           pageURL,
			Title:         page.Component,
			ComponentName: page.Component,
			ComponentKey:  identity.Key,
			Category:      page.Category,
			HierarchyPath: strings.TrimPrefix(page.Path, "/"),
			Content:       content,
			RawMarkup:     markup,
			ContentHash:   seeder.ContentHash(content),
		}
		doc.CodeExamples = cs.processor.ExtractCodeExamples(e.DOM)
		doc.Guidance = cs.processor.ExtractGuidance(e.DOM)
		doc.Tags = cs.processor.ExtractTags(e.DOM)
	})

	c.OnError(func(r *colly.Response, err error) {
		processingError = err
	})

	if err := c.Visit(pageURL); err != nil {
		return fmt.Errorf("failed to visit page: %w", err)
	}
	if processingError != nil {
		return fmt.Errorf("processing error: %w", processingError)
	}
	if doc == nil || doc.Content == "" {
		return fmt.Errorf("no content extracted from page")
	}

	if *dryRun {
		cs.logger.WithFields(logrus.Fields{
			"component":      doc.ComponentName,
			"content_length": len(doc.Content),
			"examples":       len(doc.CodeExamples),
			"guidance":       len(doc.Guidance),
			"tags":           len(doc.Tags),
			"hash":           doc.ContentHash[:8],
		}).Info("DRY RUN: Would store document")
		return nil
	}

	// Replace any previous crawl of the same component.
	if existing, err := cs.repoManager.Document.GetByComponentKey(doc.ComponentKey); err == nil {
		if existing.ContentHash == doc.ContentHash {
			cs.logger.WithField("component", doc.ComponentName).Debug("Content unchanged, skipping")
			return nil
		}
		if err := cs.repoManager.Document.Delete(existing.ID); err != nil {
			return fmt.Errorf("failed to replace existing document: %w", err)
		}
		// The cached doc is stale the moment the replacement lands.
		if err := cs.cache.InvalidateComponentDoc(context.Background(), doc.ComponentKey); err != nil {
			cs.logger.WithError(err).Warn("Failed to invalidate component cache")
		}
	}

	return cs.repoManager.Document.Create(doc)
}
