package cli

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/mindjek007/XenForo-Scraper/internal/config"
	"github.com/mindjek007/XenForo-Scraper/internal/database"
	"github.com/mindjek007/XenForo-Scraper/internal/fetch"
	"github.com/mindjek007/XenForo-Scraper/internal/models"
	"github.com/mindjek007/XenForo-Scraper/internal/pattern"
	"github.com/mindjek007/XenForo-Scraper/internal/scraper"
)

type Commander struct {
	cfg        *config.Config
	site       *config.SiteConfig
	scraper    *scraper.Scraper
	store      pattern.Store
	exporter   *Exporter
	repo       *database.Repository
	watcher    *scraper.WatchScheduler
	lastThread *models.Thread

	// color
	green  func(a ...interface{}) string
	red    func(a ...interface{}) string
	yellow func(a ...interface{}) string
	cyan   func(a ...interface{}) string
}

func NewCommander(cfg *config.Config, siteName string, repo *database.Repository) (*Commander, error) {
	site, err := config.GetSite(siteName)
	if err != nil {
		return nil, err
	}

	c := &Commander{
		cfg:      cfg,
		store:    pattern.NewFileStore(cfg.App.PatternsFile),
		exporter: NewExporter(cfg.App.ExportPath),
		repo:     repo,
		green:    color.New(color.FgGreen).SprintFunc(),
		red:      color.New(color.FgRed).SprintFunc(),
		yellow:   color.New(color.FgYellow).SprintFunc(),
		cyan:     color.New(color.FgCyan).SprintFunc(),
	}
	if err := c.useSite(site); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Commander) useSite(site *config.SiteConfig) error {
	s, err := scraper.New(site.BaseURL, fetch.NewClient(site.Delay), c.store)
	if err != nil {
		return err
	}
	c.site = site
	c.scraper = s
	c.watcher = scraper.NewWatchScheduler(s, site.MaxPages, c.handleWatchedThread)
	return nil
}

func (c *Commander) handleWatchedThread(t *models.Thread) {
	if filename, err := c.exporter.ExportThreadJSON(t); err == nil {
		fmt.Printf("\n%s Exported %s\n", c.green("✓"), filename)
	}
	c.archiveThread(t)
}

func (c *Commander) ExecuteCommand(command string, args []string) {
	switch command {
	case "help":
		c.printHelp()
	case "scrape":
		c.cmdScrape(args)
	case "detect":
		c.cmdDetect(args)
	case "pattern", "patterns":
		c.cmdPattern()
	case "export":
		c.cmdExport(args)
	case "threads":
		c.cmdThreads(args)
	case "watch":
		c.cmdWatch(args)
	case "unwatch":
		c.cmdUnwatch(args)
	case "watching":
		c.cmdWatching()
	case "site":
		c.cmdSite(args)
	case "sites":
		c.cmdSites()
	case "status":
		c.cmdStatus()
	case "exit", "quit":
		c.watcher.StopAll()
		fmt.Println("Bye!")
		os.Exit(0)
	default:
		fmt.Printf("%s Unknown command: %s (try 'help')\n", c.red("✗"), command)
	}
}

func (c *Commander) cmdScrape(args []string) {
	if len(args) < 1 {
		fmt.Printf("%s Usage: scrape <thread-url> [max-pages]\n", c.yellow("!"))
		return
	}
	threadURL := args[0]
	maxPages := c.site.MaxPages
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			maxPages = n
		}
	}

	var jobID int
	if c.repo != nil {
		jobID, _ = c.repo.CreateScrapeJob(threadURL)
	}

	thread, err := c.scraper.ScrapeThread(threadURL, maxPages)
	if err != nil {
		if c.repo != nil && jobID > 0 {
			c.repo.UpdateScrapeJob(jobID, "failed", 0, err.Error())
		}
		fmt.Printf("%s Scrape failed: %v\n", c.red("✗"), err)
		return
	}
	c.lastThread = thread

	if c.repo != nil && jobID > 0 {
		c.repo.UpdateScrapeJob(jobID, "completed", len(thread.Posts), "")
	}
	c.archiveThread(thread)

	fmt.Printf("%s %s\n", c.green("✓"), thread.Title)
	fmt.Printf("  Thread ID: %s\n", thread.ThreadID)
	fmt.Printf("  Posts: %d across %d page(s)\n", len(thread.Posts), thread.CurrentPage)
	fmt.Printf("  Social links: %d\n", len(thread.SocialLinks))
	fmt.Println("  Use 'export' to write JSON")
}

func (c *Commander) cmdDetect(args []string) {
	if len(args) < 1 {
		fmt.Printf("%s Usage: detect <thread-url>\n", c.yellow("!"))
		return
	}
	p, err := c.scraper.DetectPattern(args[0])
	if err != nil {
		fmt.Printf("%s Detection failed: %v\n", c.red("✗"), err)
		return
	}
	fmt.Printf("%s Detected pattern for %s\n", c.green("✓"), c.scraper.SiteKey())
	c.printPattern(p)
}

func (c *Commander) cmdPattern() {
	p, ok, err := c.store.Load(c.scraper.SiteKey())
	if err != nil {
		fmt.Printf("%s Could not load pattern: %v\n", c.red("✗"), err)
		return
	}
	if !ok {
		fmt.Printf("%s No stored pattern for %s; catalog defaults in use\n",
			c.yellow("!"), c.scraper.SiteKey())
		return
	}
	c.printPattern(p)
}

func (c *Commander) printPattern(p *pattern.SitePattern) {
	fmt.Printf("  Version: %s\n", p.Version)
	if p.SampleURL != "" {
		fmt.Printf("  Sample: %s\n", p.SampleURL)
	}
	for role, sels := range p.Selectors {
		fmt.Printf("  %s: %v\n", c.cyan(role), sels)
	}
	if classes := p.ContentClasses(); len(classes) > 0 {
		fmt.Printf("  %s: %v\n", c.cyan("content_wrapper"), classes)
	}
	if attr := p.PostIDAttr(); attr != "" {
		fmt.Printf("  %s: %s\n", c.cyan("post_id"), attr)
	}
	if p.IsEmpty() {
		fmt.Printf("  %s Pattern is empty; extraction will use defaults\n", c.yellow("!"))
	}
}

func (c *Commander) cmdExport(args []string) {
	if c.lastThread == nil {
		fmt.Printf("%s Nothing to export; run 'scrape' first\n", c.yellow("!"))
		return
	}

	format := "json"
	if len(args) > 0 {
		format = args[0]
	}

	var filename string
	var err error
	switch format {
	case "json":
		filename, err = c.exporter.ExportThreadJSON(c.lastThread)
	case "csv":
		filename, err = c.exporter.ExportPostsCSV(c.lastThread)
	default:
		fmt.Printf("%s Unknown format %q (json or csv)\n", c.red("✗"), format)
		return
	}
	if err != nil {
		fmt.Printf("%s Export failed: %v\n", c.red("✗"), err)
		return
	}
	fmt.Printf("%s Exported to %s\n", c.green("✓"), filename)
}

func (c *Commander) cmdThreads(args []string) {
	if len(args) < 1 {
		fmt.Printf("%s Usage: threads <forum-url> [limit]\n", c.yellow("!"))
		return
	}
	limit := 0
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			limit = n
		}
	}

	urls, err := c.scraper.ThreadURLs(args[0], limit)
	if err != nil {
		fmt.Printf("%s Failed to list threads: %v\n", c.red("✗"), err)
		return
	}
	for i, u := range urls {
		fmt.Printf("  %2d. %s\n", i+1, u)
	}
}

func (c *Commander) cmdWatch(args []string) {
	if len(args) < 1 {
		fmt.Printf("%s Usage: watch <thread-url> [interval]\n", c.yellow("!"))
		return
	}
	interval := 15 * time.Minute
	if len(args) > 1 {
		parsed, err := time.ParseDuration(args[1])
		if err != nil {
			fmt.Printf("%s Bad interval %q: %v\n", c.red("✗"), args[1], err)
			return
		}
		interval = parsed
	}

	if err := c.watcher.Watch(args[0], interval); err != nil {
		fmt.Printf("%s %v\n", c.red("✗"), err)
		return
	}
	fmt.Printf("%s Watching %s every %s\n", c.green("✓"), args[0], interval)
}

func (c *Commander) cmdUnwatch(args []string) {
	if len(args) < 1 {
		fmt.Printf("%s Usage: unwatch <thread-url>\n", c.yellow("!"))
		return
	}
	if err := c.watcher.Unwatch(args[0]); err != nil {
		fmt.Printf("%s %v\n", c.red("✗"), err)
		return
	}
	fmt.Printf("%s Stopped watching %s\n", c.green("✓"), args[0])
}

func (c *Commander) cmdWatching() {
	watched := c.watcher.Watched()
	if len(watched) == 0 {
		fmt.Println("No threads being watched")
		return
	}
	for _, u := range watched {
		fmt.Printf("  • %s\n", u)
	}
}

func (c *Commander) cmdSite(args []string) {
	if len(args) < 1 {
		fmt.Printf("Current site: %s (%s)\n", c.site.Name, c.site.BaseURL)
		return
	}
	site, err := config.GetSite(args[0])
	if err != nil {
		fmt.Printf("%s %v\n", c.red("✗"), err)
		return
	}
	if err := c.useSite(site); err != nil {
		fmt.Printf("%s %v\n", c.red("✗"), err)
		return
	}
	c.lastThread = nil
	fmt.Printf("%s Switched to %s (%s)\n", c.green("✓"), site.Name, site.BaseURL)
}

func (c *Commander) cmdSites() {
	for _, site := range c.cfg.Sites {
		status := c.red("disabled")
		if site.Enabled {
			status = c.green("enabled")
		}
		marker := " "
		if site.Name == c.site.Name {
			marker = "*"
		}
		fmt.Printf("%s %s [%s] %s\n", marker, site.Name, status, site.BaseURL)
	}
}

func (c *Commander) cmdStatus() {
	fmt.Printf("Site: %s (%s)\n", c.site.Name, c.site.BaseURL)
	if c.lastThread != nil {
		fmt.Printf("Last thread: %s (%d posts)\n", c.lastThread.Title, len(c.lastThread.Posts))
	}

	if c.repo == nil {
		fmt.Println("Database: not configured")
		return
	}
	threads, err := c.repo.GetThreadCount()
	if err != nil {
		fmt.Printf("%s Database error: %v\n", c.red("✗"), err)
		return
	}
	posts, _ := c.repo.GetPostCount()
	fmt.Printf("Archived: %d threads, %d posts\n", threads, posts)

	if job, err := c.repo.GetLastScrapeJob(); err == nil && job != nil {
		fmt.Printf("Last job: %s (%d posts) at %s\n",
			job.Status, job.PostsScraped, job.StartedAt.Format(time.RFC3339))
	}
}

func (c *Commander) archiveThread(t *models.Thread) {
	if c.repo == nil {
		return
	}
	if err := c.repo.SaveThread(t); err != nil {
		fmt.Printf("%s Failed to archive thread: %v\n", c.yellow("!"), err)
	}
}

func (c *Commander) printHelp() {
	fmt.Println("\nCommands:")
	fmt.Println("  scrape <thread-url> [max-pages]  Scrape a thread")
	fmt.Println("  detect <thread-url>              Re-detect site selectors from a sample page")
	fmt.Println("  pattern                          Show the stored pattern for the current site")
	fmt.Println("  export [json|csv]                Export the last scraped thread")
	fmt.Println("  threads <forum-url> [limit]      List thread URLs on a forum page")
	fmt.Println("  watch <thread-url> [interval]    Re-scrape a thread periodically")
	fmt.Println("  unwatch <thread-url>             Stop watching a thread")
	fmt.Println("  watching                         List watched threads")
	fmt.Println("  site [name]                      Show or switch the active site")
	fmt.Println("  sites                            List configured sites")
	fmt.Println("  status                           Show site and archive status")
	fmt.Println("  exit                             Quit")
}
