package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/image-color-mcp/internal/catalog"
	"github.com/ironsheep/image-color-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-color-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("image-color-mcp - MCP server for color naming and image editing")
			fmt.Println()
			fmt.Println("Usage: image-color-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  IMAGE_COLOR_MCP_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println("  IMAGE_COLOR_MCP_CATALOG=<path>     JSON color catalog to use instead of the built-in one")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("IMAGE_COLOR_MCP_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("Image Color MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	cat, err := loadCatalog(os.Getenv("IMAGE_COLOR_MCP_CATALOG"))
	if err != nil {
		log.Fatalf("Catalog error: %v", err)
	}
	if debug {
		log.Printf("Color catalog ready: %d entries", cat.Len())
	}

	srv := server.New(cat, debug)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

// loadCatalog builds the catalog from path, or from the embedded dataset
// when path is empty. The catalog is built eagerly so a malformed dataset
// stops the server at startup.
func loadCatalog(path string) (*catalog.Catalog, error) {
	var cat *catalog.Catalog
	if path == "" {
		c, err := catalog.NewDefault()
		if err != nil {
			return nil, err
		}
		cat = c
	} else {
		ds, err := catalog.LoadDatasetFile(path)
		if err != nil {
			return nil, err
		}
		cat = catalog.New(ds)
	}

	if err := cat.Build(); err != nil {
		return nil, err
	}
	return cat, nil
}
