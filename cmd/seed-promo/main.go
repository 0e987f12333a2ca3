package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/matbakhapp/orderapi/internal/config"
	"github.com/matbakhapp/orderapi/internal/domain"
	"github.com/matbakhapp/orderapi/internal/repository/postgres"
)

func main() {
	if len(os.Args) < 4 {
		fmt.Println("Usage: go run cmd/seed-promo/main.go <code> <percentage|fixed> <value> [min-order] [max-uses]")
		fmt.Println("Example: go run cmd/seed-promo/main.go SAVE10 percentage 10 50")
		os.Exit(1)
	}

	code := os.Args[1]
	discountType := domain.DiscountType(os.Args[2])
	if !discountType.IsValid() {
		fmt.Fprintf(os.Stderr, "Discount type must be \"percentage\" or \"fixed\", got %q\n", os.Args[2])
		os.Exit(1)
	}

	value, err := decimal.NewFromString(os.Args[3])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid discount value: %v\n", err)
		os.Exit(1)
	}
	if discountType == domain.DiscountTypePercentage {
		if value.LessThanOrEqual(decimal.Zero) || value.GreaterThan(decimal.NewFromInt(100)) {
			fmt.Fprintln(os.Stderr, "Percentage value must be in (0, 100]")
			os.Exit(1)
		}
	}

	minOrder := decimal.Zero
	if len(os.Args) > 4 {
		minOrder, err = decimal.NewFromString(os.Args[4])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid minimum order amount: %v\n", err)
			os.Exit(1)
		}
	}

	var maxUses *int
	if len(os.Args) > 5 {
		n, err := strconv.Atoi(os.Args[5])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid max uses: %v\n", err)
			os.Exit(1)
		}
		maxUses = &n
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Connect to database
	db, err := postgres.NewConnection(cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// Create repositories
	repos := postgres.NewRepositories(db, logger)

	promo := &domain.PromoCode{
		Code:           code,
		DiscountType:   discountType,
		DiscountValue:  value,
		MinOrderAmount: minOrder,
		MaxUses:        maxUses,
		IsActive:       true,
	}

	if err := repos.Promo.Create(context.Background(), promo); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create promo code: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Promo code created:\n")
	fmt.Printf("  ID:    %s\n", promo.ID)
	fmt.Printf("  Code:  %s\n", promo.Code)
	fmt.Printf("  Type:  %s\n", promo.DiscountType)
	fmt.Printf("  Value: %s\n", promo.DiscountValue)
}
