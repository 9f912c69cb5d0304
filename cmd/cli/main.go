package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mindjek007/XenForo-Scraper/internal/cli"
	"github.com/mindjek007/XenForo-Scraper/internal/config"
	"github.com/mindjek007/XenForo-Scraper/internal/database"
)

func main() {
	var (
		configFile = flag.String("config", "configs/config.yaml", "Configuration file path")
		threadURL  = flag.String("url", "", "Thread URL for one-shot mode")
		scrapeFlag = flag.Bool("scrape", false, "Scrape -url, export JSON and exit")
		detectFlag = flag.Bool("detect", false, "Detect patterns from -url and exit")
		siteName   = flag.String("site", "", "Site to use (overrides default)")
		listFlag   = flag.Bool("list", false, "List configured sites")
	)
	flag.Parse()

	if err := loadConfig(*configFile); err != nil {
		log.Printf("Warning: Could not load config file %s: %v", *configFile, err)
		log.Println("Using default configuration")
		config.LoadDefault()
	}

	cfg := config.Get()

	if *listFlag {
		listSites()
		return
	}

	var repo *database.Repository
	if cfg.Database.URL != "" {
		if err := database.Initialize(cfg.Database.URL,
			cfg.Database.MaxConnections,
			cfg.Database.MaxIdle,
			cfg.Database.ConnectionLifetime); err != nil {
			log.Fatal("Failed to initialize database:", err)
		}
		defer database.Close()
		repo = database.NewRepository()
	}

	siteToUse := cfg.App.DefaultSite
	if *siteName != "" {
		siteToUse = *siteName
	}

	commander, err := cli.NewCommander(cfg, siteToUse, repo)
	if err != nil {
		log.Fatal("Failed to initialize commander:", err)
	}

	if *scrapeFlag || *detectFlag {
		if *threadURL == "" {
			log.Fatal("-url is required with -scrape or -detect")
		}
		if *detectFlag {
			commander.ExecuteCommand("detect", []string{*threadURL})
			return
		}
		commander.ExecuteCommand("scrape", []string{*threadURL})
		commander.ExecuteCommand("export", nil)
		return
	}

	printWelcome(cfg)
	startInteractiveMode(commander, cfg)
}

func loadConfig(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		execPath, _ := os.Executable()
		execDir := filepath.Dir(execPath)
		altPath := filepath.Join(execDir, path)

		if _, err := os.Stat(altPath); err == nil {
			path = altPath
		} else {
			return fmt.Errorf("config file not found: %s", path)
		}
	}

	return config.Load(path)
}

func listSites() {
	cfg := config.Get()

	fmt.Println("\nConfigured Sites:")
	fmt.Println(strings.Repeat("─", 50))

	for _, site := range cfg.Sites {
		status := "disabled"
		statusColor := color.New(color.FgRed).SprintFunc()
		if site.Enabled {
			status = "enabled"
			statusColor = color.New(color.FgGreen).SprintFunc()
		}

		fmt.Printf("• %s [%s]\n", site.Name, statusColor(status))
		fmt.Printf("  URL: %s\n", site.BaseURL)
		fmt.Printf("  Delay: %s\n", site.Delay)
		fmt.Println()
	}
}

func printWelcome(cfg *config.Config) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Println(cyan("╔══════════════════════════════════════════╗"))
	fmt.Println(cyan("║          XenForo Forum Scraper           ║"))
	fmt.Println(cyan("╚══════════════════════════════════════════╝"))
	fmt.Println()
	fmt.Printf("Active site: %s\n", cfg.App.DefaultSite)
	fmt.Println("Type 'help' for available commands")
}

func startInteractiveMode(commander *cli.Commander, cfg *config.Config) {
	scanner := bufio.NewScanner(os.Stdin)
	prompt := cfg.App.CLI.Prompt
	if prompt == "" {
		prompt = "➜"
	}

	yellow := color.New(color.FgYellow).SprintFunc()

	for {
		fmt.Print(yellow("\n" + prompt + " "))
		scanner.Scan()
		input := strings.TrimSpace(scanner.Text())

		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		command := strings.ToLower(parts[0])
		args := parts[1:]

		commander.ExecuteCommand(command, args)
	}
}
