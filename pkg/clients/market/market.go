package market

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/petokpredict/server/internal/domain/models"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Source describes one retail site we scrape for a live per-kg price.
// Bounds reject prices that cannot plausibly be a chicken price (page
// totals, SKUs, phone numbers).
type Source struct {
	Key      string
	URL      string
	Title    string
	Label    string
	MinPrice float64
	MaxPrice float64
}

var (
	// SourcePasarSegar lists free-range (kampung) carcass prices.
	SourcePasarSegar = Source{
		Key:      "pasarsegar",
		URL:      "https://pasarsegar.co.id/product/ayam-kampung-potong-1-kg-20/",
		Title:    "Ayam Kampung Potong Segar",
		Label:    "PasarSegar.co.id",
		MinPrice: 30000,
		MaxPrice: 200000,
	}

	// SourceJapfaBest lists broiler carcass prices.
	SourceJapfaBest = Source{
		Key:      "japfabest",
		URL:      "https://www.japfabest.com/products/ayam-karkas-broiler-1-kg/",
		Title:    "Ayam Broiler Karkas",
		Label:    "JapfaBest.com",
		MinPrice: 25000,
		MaxPrice: 80000,
	}
)

// SourceFor maps a chicken type to the site that tracks it.
func SourceFor(t models.ChickenType) Source {
	if t == models.ChickenKampung {
		return SourcePasarSegar
	}
	return SourceJapfaBest
}

// Indonesian price markup comes in a handful of shapes: "Rp 45.000",
// JSON-LD "price" attributes, bare numbers suffixed with a currency
// hint, and data-price attributes. Thousands separators are dots or
// commas. Each pattern captures the head and tail digit groups.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)Rp[\s\D]*?(\d{2,3})[.,]?(\d{3,})`),
	regexp.MustCompile(`(?i)"price"[\s\S]*?(\d{2,3})[.,]?(\d{3,})`),
	regexp.MustCompile(`(?i)(\d{2,3})[.,](\d{3,})[\s\D]*?(rupiah|idr|/kg)`),
	regexp.MustCompile(`(?i)data-price[^>]*?(\d{2,3})[.,]?(\d{3,})`),
}

// Client fetches live market prices.
type Client interface {
	FetchPrice(ctx context.Context, source Source) (*models.PriceQuote, error)
}

type marketClient struct {
	httpClient *resty.Client
}

// NewClient creates a configured scraper client.
func NewClient() Client {
	client := resty.New().
		SetHeader("User-Agent", userAgent).
		SetTimeout(15 * time.Second)

	return &marketClient{httpClient: client}
}

func (c *marketClient) FetchPrice(ctx context.Context, source Source) (*models.PriceQuote, error) {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		Get(source.URL)

	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", source.Key, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch %s: HTTP %d", source.Key, resp.StatusCode())
	}

	price, ok := ExtractPrice(resp.String(), source.MinPrice, source.MaxPrice)
	if !ok {
		return nil, fmt.Errorf("no valid price found on %s", source.Label)
	}

	return &models.PriceQuote{
		PricePerKg: price,
		Currency:   "IDR",
		Unit:       "per kg",
		Title:      source.Title,
		Source:     source.Label + " (Live)",
		Timestamp:  time.Now(),
	}, nil
}

// ExtractPrice scans raw HTML for the first price-shaped number inside
// [min, max]. Candidates are built by joining the two captured digit
// groups, so "45.000" and "45000" both yield 45000.
func ExtractPrice(html string, min, max float64) (float64, bool) {
	for _, pattern := range pricePatterns {
		for _, match := range pattern.FindAllStringSubmatch(html, -1) {
			digits := stripNonDigits(match[1] + match[2])
			price, err := strconv.ParseFloat(digits, 64)
			if err != nil {
				continue
			}
			if price >= min && price <= max {
				return price, true
			}
		}
	}
	return 0, false
}

func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
