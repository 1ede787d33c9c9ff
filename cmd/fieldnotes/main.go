package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/tbardin/fieldnotes"
	"github.com/tbardin/fieldnotes/content"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "sync":
		if err := runSync(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "lint":
		if err := runLint(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "new":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, `Usage: fieldnotes new "Post Title"`)
			os.Exit(1)
		}
		if err := runNew(os.Args[2], os.Args[3:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "version":
		fmt.Printf("fieldnotes %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

func loadConfig() (fieldnotes.SiteConfig, error) {
	// .env is optional; environment always wins.
	_ = godotenv.Load()
	return fieldnotes.LoadConfig("site.yml")
}

func runServe() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	app := fieldnotes.New(cfg, fieldnotes.DefaultViews(cfg), fieldnotes.WithLogger(newLogger()))
	defer app.Close()
	return app.Start()
}

func runSync() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	app := fieldnotes.New(cfg, fieldnotes.ViewFuncs{}, fieldnotes.WithLogger(newLogger()))
	if err := app.OpenStore(); err != nil {
		return err
	}
	defer app.Close()

	report, err := app.SyncContent()
	if err != nil {
		return err
	}
	if !report.OK() {
		fmt.Printf("synced with %d lint problem(s); run `fieldnotes lint` for details\n", len(report.Problems))
		return nil
	}
	fmt.Println("synced")
	return nil
}

func runLint() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	report, err := content.LintDir(cfg.ContentDir)
	if err != nil {
		return err
	}
	if report.OK() {
		fmt.Printf("%d file(s) checked, no problems\n", report.Checked)
		return nil
	}
	for _, p := range report.Problems {
		fmt.Println(p.String())
	}
	fmt.Printf("%d problem(s) in %d file(s) checked\n", len(report.Problems), report.Checked)
	os.Exit(1)
	return nil
}

func printUsage() {
	fmt.Println(`fieldnotes - a file-first blog publishing engine

Usage:
  fieldnotes <command> [arguments]

Commands:
  serve         Sync content and start the web server
  sync          Import the content directory into the post index
  lint          Validate front matter in every post file
  new <title>   Scaffold a new post file in the content directory
  version       Print the fieldnotes version
  help          Show this help message

Examples:
  fieldnotes new "SQL Window Functions You Will Actually Use"
  fieldnotes lint
  fieldnotes serve`)
}
