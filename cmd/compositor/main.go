package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/product-compositor/internal/config"
	"github.com/ironsheep/product-compositor/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("product-compositor %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("product-compositor - MCP server for product photo compositing")
			fmt.Println()
			fmt.Println("Usage: product-compositor [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  COMPOSITOR_LOG_LEVEL=debug           Enable debug logging")
			fmt.Println("  COMPOSITOR_TOLERANCE=10              Backdrop tolerance (0-255)")
			fmt.Println("  COMPOSITOR_PLACEMENTS=<file.csv>     platform,product_type,offset,height")
			fmt.Println("  COMPOSITOR_TEMPLATES=LD=<path>,...   Template image per platform")
			fmt.Println("  COMPOSITOR_OUTPUT_FORMAT=jpeg|png    Encoding of produced images")
			fmt.Println("  COMPOSITOR_JPEG_QUALITY=95           JPEG quality (1-100)")
			fmt.Println("  COMPOSITOR_CANVAS_COLOR=#FFFFFF      Canvas color for layouts")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if cfg.Debug {
		log.Printf("Product compositor v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	var placements *config.PlacementTable
	if cfg.PlacementsPath != "" {
		placements, err = config.LoadPlacementsFile(cfg.PlacementsPath)
		if err != nil {
			log.Fatalf("Configuration error: %v", err)
		}
		if cfg.Debug {
			log.Printf("Loaded %d placements for platforms %v", placements.Len(), placements.Platforms())
		}
	} else {
		placements = config.NewPlacementTable()
	}

	srv := server.New(cfg, placements)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
