package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// status is the envelope status block present on every response.
type status struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// envelope is the outer shape of every API response. The result is kept
// raw so Do can decode it into the per-command type.
type envelope struct {
	Status status          `json:"status"`
	Result json.RawMessage `json:"result"`
}

// jsonFalse matches the literal the API uses for "absent" on several
// fields that are otherwise objects, arrays, or strings.
var jsonFalse = []byte("false")

// MaskableIP decodes the IP field, which is the literal false while the
// proxy's address is hidden and a string once it has been bought.
type MaskableIP string

func (m *MaskableIP) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonFalse) {
		*m = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("IP field must be false or a string: %w", err)
	}
	*m = MaskableIP(s)
	return nil
}

// ZipCode decodes the ZipCode field, where "-" means no zip code is known.
type ZipCode string

func (z *ZipCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "-" {
		s = ""
	}
	*z = ZipCode(s)
	return nil
}

// BlacklistEntry is one blacklist listing for a proxy.
type BlacklistEntry struct {
	ID   string `json:"ID"`
	Name string `json:"Name"`
	Type string `json:"Type"`
	Desc string `json:"Desc"`
	Link string `json:"Link"`
}

// Blacklist decodes the Blacklist field: false when the proxy is clean,
// otherwise an array of entries.
type Blacklist []BlacklistEntry

func (b *Blacklist) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonFalse) {
		*b = nil
		return nil
	}
	var entries []BlacklistEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("Blacklist field must be false or an array: %w", err)
	}
	*b = entries
	return nil
}

// ConnectInfo is the connection endpoint for a bought proxy.
type ConnectInfo struct {
	ConnectIP        string `json:"ConnectIP"`
	ConnectPort      int    `json:"ConnectPort"`
	ConnectSessionID string `json:"ConnectSessionID"`
}

// OptionalConnectInfo decodes the ConnectInfo field: false while the proxy
// is not connectable, otherwise an object.
type OptionalConnectInfo struct {
	Info *ConnectInfo
}

func (o *OptionalConnectInfo) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, jsonFalse) {
		o.Info = nil
		return nil
	}
	var ci ConnectInfo
	if err := json.Unmarshal(data, &ci); err != nil {
		return fmt.Errorf("ConnectInfo field must be false or an object: %w", err)
	}
	o.Info = &ci
	return nil
}

// ProxyInfo is a proxy record as it appears on the wire.
type ProxyInfo struct {
	ProxyID       int        `json:"ProxyID"`
	CostBuy       int        `json:"CostBuy"`
	CostRent      int        `json:"CostRent"`
	IsFresh       bool       `json:"IsFresh"`
	IP            MaskableIP `json:"IP"`
	Hostname      string     `json:"Hostname"`
	ISP           string     `json:"ISP"`
	CountryCode   string     `json:"CountryCode"`
	Country       string     `json:"Country"`
	Region        string     `json:"Region"`
	City          string     `json:"City"`
	ZipCode       ZipCode    `json:"ZipCode"`
	Timezone      string     `json:"Timezone"`
	Connect       string     `json:"Connect"`
	Ping          float64    `json:"Ping"`
	Speed         int64      `json:"Speed"`
	UpTimeQuality int        `json:"UpTimeQuality"`
	Blacklist     Blacklist  `json:"Blacklist"`
	Distance      *float64   `json:"Distance"`
}

// HistoryEntry is one purchase history record on the wire.
type HistoryEntry struct {
	HistoryID           int64               `json:"HistoryID"`
	ConnectInfo         OptionalConnectInfo `json:"ConnectInfo"`
	ProxyInfo           ProxyInfo           `json:"ProxyInfo"`
	LastBought          int64               `json:"LastBought"`
	RemainingTime       int64               `json:"RemainingTime"`
	IsOnline            bool                `json:"IsOnline"`
	IsFresh             bool                `json:"IsFresh"`
	IsRented            bool                `json:"IsRented"`
	RefundAvailable     bool                `json:"RefundAvailable"`
	RenewEnabled        bool                `json:"RenewEnabled"`
	RenewCountRemaining int64               `json:"RenewCountRemaining"`
	IPHasChanged        bool                `json:"IPHasChanged"`
	Note                string              `json:"Note"`
}

// ListOnlineResult represents the ListOnline command result.
type ListOnlineResult struct {
	LastUpdate int64       `json:"LastUpdate"`
	ProxyCount int         `json:"ProxyCount"`
	ProxyList  []ProxyInfo `json:"ProxyList"`
}

// ListZipSearchResult represents the ListZipSearch command result.
type ListZipSearchResult struct {
	ServerTime        int64       `json:"ServerTime"`
	SearchCountryCode string      `json:"SearchCountryCode"`
	SearchUnits       string      `json:"SearchUnits"`
	SearchRange       int         `json:"SearchRange"`
	SearchZipCode     string      `json:"SearchZipCode"`
	ProxyCount        int         `json:"ProxyCount"`
	ProxyList         []ProxyInfo `json:"ProxyList"`
}

// ListHistoryResult represents one page of the ListHistory command result.
type ListHistoryResult struct {
	ServerTime            int64          `json:"ServerTime"`
	HistoryCount          int            `json:"HistoryCount"`
	HistoryEntriesPerPage int            `json:"HistoryEntriesPerPage"`
	HistoryCurrentPage    int            `json:"HistoryCurrentPage"`
	HistoryMaxPages       int            `json:"HistoryMaxPages"`
	HistoryList           []HistoryEntry `json:"HistoryList"`
}

// PurchaseResult represents the result of the four buy/rent commands.
// The API omits fields on some code paths, hence the pointers.
type PurchaseResult struct {
	ServerTime   *int64        `json:"ServerTime"`
	CreditsLeft  *int          `json:"CreditsLeft"`
	HistoryEntry *HistoryEntry `json:"HistoryEntry"`
}

// ProxyCheckResult represents the BoughtProxyCheck command result.
type ProxyCheckResult struct {
	TestsPassed    int    `json:"tests_passed"`
	TestsTotal     int    `json:"tests_total"`
	TestsResult    string `json:"tests_result"`
	TestsResultStr string `json:"tests_result_str"`
}

// TestAndRefundResult represents the BoughtProxyRefund command result.
type TestAndRefundResult struct {
	TestsPassed     int    `json:"tests_passed"`
	TestsTotal      int    `json:"tests_total"`
	TestsResult     string `json:"tests_result"`
	TestsResultStr  string `json:"tests_result_str"`
	RefundResult    string `json:"refund_result"`
	RefundResultStr string `json:"refund_result_str"`
}

// EnableRenewalResult represents the BoughtProxyRenewEnable command result.
type EnableRenewalResult struct {
	HistoryID   int64 `json:"HistoryID"`
	Enabled     bool  `json:"Enabled"`
	CreditsLeft int   `json:"CreditsLeft"`
	Cost        int   `json:"Cost"`
}

// DisableRenewalResult represents the BoughtProxyRenewDisable command result.
type DisableRenewalResult struct {
	HistoryID int64 `json:"HistoryID"`
	Enabled   bool  `json:"Enabled"`
}

// AccountStatusResult represents the AccountStatus command result.
// Created and Expires are Unix timestamps in milliseconds.
type AccountStatusResult struct {
	Created int64  `json:"Created"`
	UserID  string `json:"UserID"`
	Email   string `json:"Email"`
	Active  bool   `json:"Active"`
	Plan    string `json:"Plan"`
	Expires int64  `json:"Expires"`
	Credits int    `json:"Credits"`
}
