package api

import (
	"context"
	"net/url"
	"strconv"
)

// Ping checks that the API is reachable and accepts the key.
func (c *Client) Ping(ctx context.Context) error {
	return c.Do(ctx, "Ping", nil, nil)
}

// AccountStatus retrieves the account record for the key.
func (c *Client) AccountStatus(ctx context.Context) (*AccountStatusResult, error) {
	var result AccountStatusResult
	if err := c.Do(ctx, "AccountStatus", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListOnline lists all proxies currently online.
func (c *Client) ListOnline(ctx context.Context) (*ListOnlineResult, error) {
	var result ListOnlineResult
	if err := c.Do(ctx, "ListOnline", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ZipSearchParams are the parameters for the ListZipSearch command.
type ZipSearchParams struct {
	CountryCode string
	ZipCode     string
	Units       string // optional distance units
	Range       int    // optional search radius, in Units
}

// ListZipSearch searches online proxies around a zip code.
func (c *Client) ListZipSearch(ctx context.Context, p ZipSearchParams) (*ListZipSearchResult, error) {
	params := url.Values{}
	params.Set("countrycode", p.CountryCode)
	params.Set("zipcode", p.ZipCode)
	if p.Units != "" {
		params.Set("units", p.Units)
	}
	if p.Range > 0 {
		params.Set("range", strconv.Itoa(p.Range))
	}

	var result ListZipSearchResult
	if err := c.Do(ctx, "ListZipSearch", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// HistoryParams are the parameters for the ListHistory command.
type HistoryParams struct {
	OnlyActive bool
	Page       int // 1-based; 0 lets the API pick the first page
}

// ListHistory retrieves one page of the purchase history.
func (c *Client) ListHistory(ctx context.Context, p HistoryParams) (*ListHistoryResult, error) {
	params := url.Values{}
	if p.OnlyActive {
		params.Set("onlyactive", "1")
	}
	if p.Page > 0 {
		params.Set("page", strconv.Itoa(p.Page))
	}

	var result ListHistoryResult
	if err := c.Do(ctx, "ListHistory", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// purchase runs one of the four buy/rent commands, which share a shape:
// a proxyid parameter in, a PurchaseResult out.
func (c *Client) purchase(ctx context.Context, cmd string, proxyID int) (*PurchaseResult, error) {
	params := url.Values{}
	params.Set("proxyid", strconv.Itoa(proxyID))

	var result PurchaseResult
	if err := c.Do(ctx, cmd, params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RegularProxyBuy buys shared access to a proxy from the regular pool.
func (c *Client) RegularProxyBuy(ctx context.Context, proxyID int) (*PurchaseResult, error) {
	return c.purchase(ctx, "RegularProxyBuy", proxyID)
}

// RegularProxyRent rents a regular-pool proxy for private use.
func (c *Client) RegularProxyRent(ctx context.Context, proxyID int) (*PurchaseResult, error) {
	return c.purchase(ctx, "RegularProxyRent", proxyID)
}

// FreshProxyBuy buys shared access to a proxy from the fresh pool.
func (c *Client) FreshProxyBuy(ctx context.Context, proxyID int) (*PurchaseResult, error) {
	return c.purchase(ctx, "FreshProxyBuy", proxyID)
}

// FreshProxyRent rents a fresh-pool proxy for private use.
func (c *Client) FreshProxyRent(ctx context.Context, proxyID int) (*PurchaseResult, error) {
	return c.purchase(ctx, "FreshProxyRent", proxyID)
}

// BoughtProxyCheck runs the API's connectivity tests against a bought proxy.
func (c *Client) BoughtProxyCheck(ctx context.Context, proxyID int) (*ProxyCheckResult, error) {
	params := url.Values{}
	params.Set("proxyid", strconv.Itoa(proxyID))

	var result ProxyCheckResult
	if err := c.Do(ctx, "BoughtProxyCheck", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// BoughtProxyRefund tests a bought proxy and refunds it if the tests fail.
func (c *Client) BoughtProxyRefund(ctx context.Context, proxyID int) (*TestAndRefundResult, error) {
	params := url.Values{}
	params.Set("proxyid", strconv.Itoa(proxyID))

	var result TestAndRefundResult
	if err := c.Do(ctx, "BoughtProxyRefund", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// BoughtProxyRenewEnable enables automatic renewal for a history entry.
func (c *Client) BoughtProxyRenewEnable(ctx context.Context, historyID int64) (*EnableRenewalResult, error) {
	params := url.Values{}
	params.Set("historyid", strconv.FormatInt(historyID, 10))

	var result EnableRenewalResult
	if err := c.Do(ctx, "BoughtProxyRenewEnable", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// BoughtProxyRenewDisable disables automatic renewal for a history entry.
func (c *Client) BoughtProxyRenewDisable(ctx context.Context, historyID int64) (*DisableRenewalResult, error) {
	params := url.Values{}
	params.Set("historyid", strconv.FormatInt(historyID, 10))

	var result DisableRenewalResult
	if err := c.Do(ctx, "BoughtProxyRenewDisable", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// HistoryEntryChangeNote sets the note on a history entry. Omitting the
// note parameter clears it, so an empty note removes the existing one.
func (c *Client) HistoryEntryChangeNote(ctx context.Context, historyID int64, note string) error {
	params := url.Values{}
	params.Set("historyid", strconv.FormatInt(historyID, 10))
	if note != "" {
		params.Set("note", note)
	}
	return c.Do(ctx, "HistoryEntryChangeNote", params, nil)
}
