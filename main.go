package main

import (
	"context"
	"errors"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/crypto-anomaly/api-check/coingecko"
	"github.com/crypto-anomaly/api-check/smoketest"
)

const (
	defaultCoin     = "bitcoin"
	defaultCurrency = "usd"
	defaultDays     = 7
	defaultPerPage  = 10
	defaultPage     = 1
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		// If .env file doesn't exist, log a warning but continue
		if !errors.Is(err, os.ErrNotExist) {
			logrus.Warnf("Error loading .env file: %v", err)
		}
	}

	coin := flag.String("coin", defaultCoin, "Asset id to check")
	currency := flag.String("currency", defaultCurrency, "Quote currency")
	days := flag.Int("days", defaultDays, "Days of price history to fetch")
	perPage := flag.Int("per-page", defaultPerPage, "Snapshot page size")
	page := flag.Int("page", defaultPage, "Snapshot page number")

	// Flags that can be used instead of environment variables
	baseURL := flag.String("base-url", "", "CoinGecko API base URL (overrides env var)")
	apiKey := flag.String("api-key", "", "CoinGecko demo API key (overrides env var)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	apiURL := os.Getenv("COINGECKO_API_URL")
	if *baseURL != "" {
		apiURL = *baseURL
		logrus.Info("Using API base URL from command line")
	}
	key := os.Getenv("COINGECKO_API_KEY")
	if *apiKey != "" {
		key = *apiKey
		logrus.Info("Using API key from command line")
	}

	client := coingecko.NewClient(apiURL, key)
	runner := smoketest.NewRunner(client, smoketest.Config{
		Coin:     *coin,
		Currency: *currency,
		Days:     *days,
		PerPage:  *perPage,
		Page:     *page,
	}, os.Stdout)

	if !runner.Run(context.Background()) {
		os.Exit(1)
	}
}
