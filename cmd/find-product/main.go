package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/storekeep/adminapi/internal/config"
	"github.com/storekeep/adminapi/internal/upstream"
)

// Small operator tool: looks a product up in the core API catalog the same
// way the sale form's dropdown does, useful when checking what the dashboard
// will see for a given search term.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/find-product/main.go <search>")
		fmt.Println("Example: go run cmd/find-product/main.go \"USB cable\"")
		fmt.Println("\nCredentials are read from ADMIN_EMAIL and ADMIN_PASSWORD.")
		os.Exit(1)
	}

	search := os.Args[1]

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		fmt.Fprintln(os.Stderr, "ADMIN_EMAIL and ADMIN_PASSWORD must be set")
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	client := upstream.NewClient(cfg.Upstream, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cred, err := client.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to log in: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("🔍 Searching for: %s\n\n", search)

	products, err := client.ListProducts(ctx, cred.Token, search)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to query catalog: %v\n", err)
		os.Exit(1)
	}

	if len(products) == 0 {
		fmt.Printf("❌ No products match '%s'.\n", search)
		fmt.Printf("\nMake sure:\n")
		fmt.Printf("  1. The search term matches the product name or SKU\n")
		fmt.Printf("  2. The product exists in the core API catalog\n")
		os.Exit(1)
	}

	fmt.Printf("✅ Found %d product(s):\n\n", len(products))
	for _, p := range products {
		fmt.Printf("ID: %s\n", p.ID)
		fmt.Printf("  SKU:   %s\n", p.SKU)
		fmt.Printf("  Name:  %s\n", p.Name)
		fmt.Printf("  Price: %.2f\n", p.Price)
		fmt.Printf("  Stock: %d\n", p.Stock)
		fmt.Println()
	}
}
