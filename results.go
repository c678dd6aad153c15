package truesocks

import (
	"time"

	"github.com/truesocks/client-go/internal/api"
)

// OnlineList is the result of listing online proxies.
type OnlineList struct {
	LastUpdate time.Time
	ProxyCount int
	Proxies    []ProxyInfo
}

// ZipSearchResult is the result of a zip code search. The Search* fields
// echo the parameters the API actually applied.
type ZipSearchResult struct {
	ServerTime        time.Time
	SearchCountryCode string
	SearchUnits       string
	SearchRange       int
	SearchZipCode     string
	ProxyCount        int
	Proxies           []ProxyInfo
}

// Purchase is the result of buying or renting a proxy.
type Purchase struct {
	// ServerTime is zero when the API omits it.
	ServerTime time.Time
	// CreditsLeft after the purchase; -1 when the API omits it.
	CreditsLeft int
	// Entry is the resulting history entry, when returned.
	Entry *HistoryEntry
}

// ProxyCheck is the outcome of the API's connectivity tests against a
// bought proxy.
type ProxyCheck struct {
	TestsPassed int
	TestsTotal  int
	// Result is the short machine-readable outcome; ResultText is the
	// human-readable version.
	Result     string
	ResultText string
}

// TestAndRefund is the outcome of a test-and-refund request.
type TestAndRefund struct {
	ProxyCheck
	RefundResult     string
	RefundResultText string
}

// RenewalStatus reports the renewal state of a history entry after
// enabling or disabling automatic renewal.
type RenewalStatus struct {
	HistoryID int64
	Enabled   bool
	// CreditsLeft and Cost are only reported when renewal is enabled.
	CreditsLeft int
	Cost        int
}

func onlineListFromAPI(r *api.ListOnlineResult) *OnlineList {
	return &OnlineList{
		LastUpdate: time.Unix(r.LastUpdate, 0),
		ProxyCount: r.ProxyCount,
		Proxies:    proxiesFromAPI(r.ProxyList),
	}
}

func zipSearchResultFromAPI(r *api.ListZipSearchResult) *ZipSearchResult {
	return &ZipSearchResult{
		ServerTime:        time.Unix(r.ServerTime, 0),
		SearchCountryCode: r.SearchCountryCode,
		SearchUnits:       r.SearchUnits,
		SearchRange:       r.SearchRange,
		SearchZipCode:     r.SearchZipCode,
		ProxyCount:        r.ProxyCount,
		Proxies:           proxiesFromAPI(r.ProxyList),
	}
}

func purchaseFromAPI(r *api.PurchaseResult) *Purchase {
	p := &Purchase{CreditsLeft: -1}
	if r.ServerTime != nil {
		p.ServerTime = time.Unix(*r.ServerTime, 0)
	}
	if r.CreditsLeft != nil {
		p.CreditsLeft = *r.CreditsLeft
	}
	if r.HistoryEntry != nil {
		entry := historyEntryFromAPI(*r.HistoryEntry)
		p.Entry = &entry
	}
	return p
}

func proxyCheckFromAPI(r *api.ProxyCheckResult) *ProxyCheck {
	return &ProxyCheck{
		TestsPassed: r.TestsPassed,
		TestsTotal:  r.TestsTotal,
		Result:      r.TestsResult,
		ResultText:  r.TestsResultStr,
	}
}

func testAndRefundFromAPI(r *api.TestAndRefundResult) *TestAndRefund {
	return &TestAndRefund{
		ProxyCheck: ProxyCheck{
			TestsPassed: r.TestsPassed,
			TestsTotal:  r.TestsTotal,
			Result:      r.TestsResult,
			ResultText:  r.TestsResultStr,
		},
		RefundResult:     r.RefundResult,
		RefundResultText: r.RefundResultStr,
	}
}
