package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/farmgate/marketplace/pkg/logger"
)

// ErrListingNotFound is returned when the inventory service has no
// listing with the requested ID.
var ErrListingNotFound = errors.New("listing not found")

// Listing is the subset of the inventory listing the order service needs.
type Listing struct {
	ID            uint            `json:"id"`
	StockRecordID uint            `json:"stock_record_id"`
	Reference     string          `json:"reference"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Quantity      int             `json:"quantity"`
}

// InventoryClient calls the inventory service HTTP API
type InventoryClient struct {
	baseURL string
	client  *http.Client
}

// NewInventoryClient creates a new inventory service client
func NewInventoryClient(baseURL string) *InventoryClient {
	logger.Logger.Info().
		Str("base_url", baseURL).
		Msg("Inventory service client initialized")

	return &InventoryClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout:   5 * time.Second,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// GetListing fetches a marketplace listing by ID
func (c *InventoryClient) GetListing(ctx context.Context, listingID uint) (*Listing, error) {
	url := fmt.Sprintf("%s/api/listings/%d", c.baseURL, listingID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build listing request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrListingNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inventory service returned status %d", resp.StatusCode)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode listing response: %w", err)
	}
	if !env.Success {
		return nil, fmt.Errorf("inventory service error: %s", env.Error)
	}

	var listing Listing
	if err := json.Unmarshal(env.Data, &listing); err != nil {
		return nil, fmt.Errorf("failed to decode listing: %w", err)
	}

	return &listing, nil
}
