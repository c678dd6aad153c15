package truesocks

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/truesocks/client-go/internal/api"
)

// DefaultBaseURL is the production TrueSocks API endpoint.
const DefaultBaseURL = "https://api.truesocks.net/"

// Client is the TrueSocks API client. A Client holds exactly one API key
// for its lifetime and is safe for concurrent use: calls are independent
// and share no mutable state beyond the read-only credential.
type Client struct {
	apiClient *api.Client
}

// New creates a new TrueSocks client with the given API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &clientConfig{
		baseURL: DefaultBaseURL,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	apiOpts := []api.Option{
		api.WithBaseURL(cfg.baseURL),
		api.WithLogger(cfg.logger),
	}
	if cfg.timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cfg.timeout))
	}

	apiClient, err := api.New(apiKey, apiOpts...)
	if err != nil {
		return nil, err
	}

	if cfg.httpClient != nil {
		// WithTimeout applies to a custom client too.
		if cfg.timeout > 0 {
			cfg.httpClient.Timeout = cfg.timeout
		}
		apiClient.SetHTTPClient(cfg.httpClient)
	}

	return &Client{apiClient: apiClient}, nil
}

// Ping checks that the API is reachable and accepts the key.
func (c *Client) Ping(ctx context.Context) error {
	return wrapError(c.apiClient.Ping(ctx))
}

// AccountStatus retrieves the account record behind the API key.
func (c *Client) AccountStatus(ctx context.Context) (*AccountStatus, error) {
	result, err := c.apiClient.AccountStatus(ctx)
	if err != nil {
		return nil, wrapError(err)
	}
	return accountStatusFromAPI(result), nil
}

// ListOnline lists all proxies currently online.
func (c *Client) ListOnline(ctx context.Context) (*OnlineList, error) {
	result, err := c.apiClient.ListOnline(ctx)
	if err != nil {
		return nil, wrapError(err)
	}
	return onlineListFromAPI(result), nil
}

// SearchByZip searches online proxies around a zip code in the given
// country. Use WithUnits and WithSearchRange to widen the search.
func (c *Client) SearchByZip(ctx context.Context, countryCode, zipCode string, opts ...SearchOption) (*ZipSearchResult, error) {
	cfg := &searchConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	result, err := c.apiClient.ListZipSearch(ctx, api.ZipSearchParams{
		CountryCode: countryCode,
		ZipCode:     zipCode,
		Units:       cfg.units,
		Range:       cfg.rangeValue,
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return zipSearchResultFromAPI(result), nil
}

// ListHistory retrieves one page of the purchase history. Use
// WithOnlyActive and WithPage to filter and paginate.
func (c *Client) ListHistory(ctx context.Context, opts ...HistoryOption) (*History, error) {
	cfg := &historyConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	result, err := c.apiClient.ListHistory(ctx, api.HistoryParams{
		OnlyActive: cfg.onlyActive,
		Page:       cfg.page,
	})
	if err != nil {
		return nil, wrapError(err)
	}
	return historyFromAPI(result), nil
}

// BuyProxy buys shared access to a proxy from the regular pool.
// Fails with ErrProxyIsFresh before any network call when the proxy
// belongs to the fresh pool.
func (c *Client) BuyProxy(ctx context.Context, proxy *ProxyInfo) (*Purchase, error) {
	if proxy.IsFresh {
		return nil, ErrProxyIsFresh
	}
	result, err := c.apiClient.RegularProxyBuy(ctx, proxy.ID)
	if err != nil {
		return nil, wrapError(err)
	}
	return purchaseFromAPI(result), nil
}

// RentProxy rents a regular-pool proxy for private use. Fails with
// ErrProxyIsFresh for fresh-pool proxies and ErrNotRentable when the proxy
// carries no private rent offer.
func (c *Client) RentProxy(ctx context.Context, proxy *ProxyInfo) (*Purchase, error) {
	if proxy.IsFresh {
		return nil, ErrProxyIsFresh
	}
	if proxy.RentCost <= 0 {
		return nil, ErrNotRentable
	}
	result, err := c.apiClient.RegularProxyRent(ctx, proxy.ID)
	if err != nil {
		return nil, wrapError(err)
	}
	return purchaseFromAPI(result), nil
}

// BuyFreshProxy buys shared access to a proxy from the fresh pool.
// Fails with ErrProxyNotFresh for regular-pool proxies.
func (c *Client) BuyFreshProxy(ctx context.Context, proxy *ProxyInfo) (*Purchase, error) {
	if !proxy.IsFresh {
		return nil, ErrProxyNotFresh
	}
	result, err := c.apiClient.FreshProxyBuy(ctx, proxy.ID)
	if err != nil {
		return nil, wrapError(err)
	}
	return purchaseFromAPI(result), nil
}

// RentFreshProxy rents a fresh-pool proxy for private use. Fails with
// ErrProxyNotFresh for regular-pool proxies and ErrNotRentable when the
// proxy carries no private rent offer.
func (c *Client) RentFreshProxy(ctx context.Context, proxy *ProxyInfo) (*Purchase, error) {
	if !proxy.IsFresh {
		return nil, ErrProxyNotFresh
	}
	if proxy.RentCost <= 0 {
		return nil, ErrNotRentable
	}
	result, err := c.apiClient.FreshProxyRent(ctx, proxy.ID)
	if err != nil {
		return nil, wrapError(err)
	}
	return purchaseFromAPI(result), nil
}

// CheckProxy runs the API's connectivity tests against a bought proxy.
func (c *Client) CheckProxy(ctx context.Context, proxyID int) (*ProxyCheck, error) {
	result, err := c.apiClient.BoughtProxyCheck(ctx, proxyID)
	if err != nil {
		return nil, wrapError(err)
	}
	return proxyCheckFromAPI(result), nil
}

// RefundProxy tests a bought proxy and refunds it if the tests fail.
func (c *Client) RefundProxy(ctx context.Context, proxyID int) (*TestAndRefund, error) {
	result, err := c.apiClient.BoughtProxyRefund(ctx, proxyID)
	if err != nil {
		return nil, wrapError(err)
	}
	return testAndRefundFromAPI(result), nil
}

// EnableRenewal enables automatic renewal for a history entry and reports
// the renewal cost and remaining credits.
func (c *Client) EnableRenewal(ctx context.Context, historyID int64) (*RenewalStatus, error) {
	result, err := c.apiClient.BoughtProxyRenewEnable(ctx, historyID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &RenewalStatus{
		HistoryID:   result.HistoryID,
		Enabled:     result.Enabled,
		CreditsLeft: result.CreditsLeft,
		Cost:        result.Cost,
	}, nil
}

// DisableRenewal disables automatic renewal for a history entry.
func (c *Client) DisableRenewal(ctx context.Context, historyID int64) (*RenewalStatus, error) {
	result, err := c.apiClient.BoughtProxyRenewDisable(ctx, historyID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &RenewalStatus{
		HistoryID: result.HistoryID,
		Enabled:   result.Enabled,
	}, nil
}

// SetNote sets the note on a history entry.
func (c *Client) SetNote(ctx context.Context, historyID int64, note string) error {
	return wrapError(c.apiClient.HistoryEntryChangeNote(ctx, historyID, note))
}

// ClearNote removes the note from a history entry.
func (c *Client) ClearNote(ctx context.Context, historyID int64) error {
	return wrapError(c.apiClient.HistoryEntryChangeNote(ctx, historyID, ""))
}
