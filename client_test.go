package truesocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

// newTestClient starts a mock API server and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New("test-key", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return client
}

// ok wraps a result fragment in a success envelope.
func ok(result string) string {
	return `{"status":{"code":0,"message":"OK"},"result":` + result + `}`
}

// capture returns a handler that records the request query and replies
// with the given body.
func capture(q *url.Values, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*q = r.URL.Query()
		fmt.Fprint(w, body)
	}
}

const proxyJSON = `{
	"ProxyID": 1337,
	"CostBuy": 1,
	"CostRent": 12,
	"IsFresh": false,
	"IP": false,
	"Hostname": "host.example.net",
	"ISP": "Example ISP",
	"CountryCode": "DE",
	"Country": "Germany",
	"Region": "Berlin",
	"City": "Berlin",
	"ZipCode": "-",
	"Timezone": "Europe/Berlin",
	"Connect": "Mobile",
	"Ping": 88.25,
	"Speed": 1048576,
	"UpTimeQuality": 97,
	"Blacklist": false,
	"Distance": null
}`

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New("")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("New(\"\") error = %v, want ErrMissingAPIKey", err)
	}
}

func TestClient_Ping(t *testing.T) {
	t.Parallel()
	var q url.Values
	client := newTestClient(t, capture(&q, `{"status":{"code":209,"message":"OK"},"result":null}`))

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if q.Get("cmd") != "Ping" {
		t.Errorf("cmd = %s, want Ping", q.Get("cmd"))
	}
	if q.Get("key") != "test-key" {
		t.Errorf("key = %s, want test-key", q.Get("key"))
	}
}

func TestClient_AccountStatus(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ok(`{
			"Created": 1577836800000,
			"UserID": "u-42",
			"Email": "user@example.com",
			"Active": true,
			"Plan": "Pro",
			"Expires": 1735689600000,
			"Credits": 250
		}`))
	})

	status, err := client.AccountStatus(context.Background())
	if err != nil {
		t.Fatalf("AccountStatus() error = %v", err)
	}

	// Created and Expires arrive as Unix milliseconds.
	wantCreated := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if !status.Created.Equal(wantCreated) {
		t.Errorf("Created = %v, want %v", status.Created.UTC(), wantCreated)
	}
	wantExpires := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	if !status.Expires.Equal(wantExpires) {
		t.Errorf("Expires = %v, want %v", status.Expires.UTC(), wantExpires)
	}
	if status.Credits != 250 {
		t.Errorf("Credits = %d, want 250", status.Credits)
	}
	if !status.Active {
		t.Error("Active = false, want true")
	}
}

func TestClient_ListOnline(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ok(`{"LastUpdate": 1700000000, "ProxyCount": 1, "ProxyList": [`+proxyJSON+`]}`))
	})

	list, err := client.ListOnline(context.Background())
	if err != nil {
		t.Fatalf("ListOnline() error = %v", err)
	}

	if !list.LastUpdate.Equal(time.Unix(1700000000, 0)) {
		t.Errorf("LastUpdate = %v", list.LastUpdate)
	}
	if len(list.Proxies) != 1 {
		t.Fatalf("len(Proxies) = %d, want 1", len(list.Proxies))
	}

	proxy := list.Proxies[0]
	if proxy.ID != 1337 {
		t.Errorf("ID = %d, want 1337", proxy.ID)
	}
	if proxy.IP != "" {
		t.Errorf("IP = %q, want empty (masked)", proxy.IP)
	}
	if proxy.ZipCode != "" {
		t.Errorf("ZipCode = %q, want empty", proxy.ZipCode)
	}
	if proxy.Connection != ConnectionMobile {
		t.Errorf("Connection = %q, want %q", proxy.Connection, ConnectionMobile)
	}
	if proxy.Blacklist != nil {
		t.Errorf("Blacklist = %v, want nil", proxy.Blacklist)
	}
}

func TestClient_ListOnline_Empty(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ok(`{"LastUpdate": 1700000000, "ProxyCount": 0, "ProxyList": []}`))
	})

	list, err := client.ListOnline(context.Background())
	if err != nil {
		t.Fatalf("ListOnline() error = %v", err)
	}
	if len(list.Proxies) != 0 {
		t.Errorf("len(Proxies) = %d, want 0", len(list.Proxies))
	}
}

func TestClient_SearchByZip(t *testing.T) {
	t.Parallel()
	searchResult := ok(`{
		"ServerTime": 1700000000,
		"SearchCountryCode": "US",
		"SearchUnits": "km",
		"SearchRange": 50,
		"SearchZipCode": "10001",
		"ProxyCount": 0,
		"ProxyList": []
	}`)

	t.Run("required params only", func(t *testing.T) {
		var q url.Values
		client := newTestClient(t, capture(&q, searchResult))

		if _, err := client.SearchByZip(context.Background(), "US", "10001"); err != nil {
			t.Fatalf("SearchByZip() error = %v", err)
		}
		if q.Get("cmd") != "ListZipSearch" {
			t.Errorf("cmd = %s, want ListZipSearch", q.Get("cmd"))
		}
		if q.Get("countrycode") != "US" || q.Get("zipcode") != "10001" {
			t.Errorf("countrycode=%s zipcode=%s", q.Get("countrycode"), q.Get("zipcode"))
		}
		if q.Has("units") || q.Has("range") {
			t.Error("units/range must be omitted unless set")
		}
	})

	t.Run("with options", func(t *testing.T) {
		var q url.Values
		client := newTestClient(t, capture(&q, searchResult))

		result, err := client.SearchByZip(context.Background(), "US", "10001",
			WithUnits("km"),
			WithSearchRange(50),
		)
		if err != nil {
			t.Fatalf("SearchByZip() error = %v", err)
		}
		if q.Get("units") != "km" || q.Get("range") != "50" {
			t.Errorf("units=%s range=%s", q.Get("units"), q.Get("range"))
		}
		if result.SearchRange != 50 || result.SearchUnits != "km" {
			t.Errorf("echoed search params = %q/%d", result.SearchUnits, result.SearchRange)
		}
	})
}

func TestClient_ListHistory(t *testing.T) {
	t.Parallel()
	historyResult := ok(`{
		"ServerTime": 1700000000,
		"HistoryCount": 1,
		"HistoryEntriesPerPage": 25,
		"HistoryCurrentPage": 1,
		"HistoryMaxPages": 1,
		"HistoryList": [{
			"HistoryID": 991,
			"ConnectInfo": {"ConnectIP":"198.51.100.9","ConnectPort":1080,"ConnectSessionID":"s-1"},
			"ProxyInfo": ` + proxyJSON + `,
			"LastBought": 1699990000,
			"RemainingTime": 7200,
			"IsOnline": true,
			"IsFresh": false,
			"IsRented": false,
			"RefundAvailable": true,
			"RenewEnabled": false,
			"RenewCountRemaining": 0,
			"IPHasChanged": false,
			"Note": "office proxy"
		}]
	}`)

	var q url.Values
	client := newTestClient(t, capture(&q, historyResult))

	history, err := client.ListHistory(context.Background(), WithOnlyActive(), WithPage(2))
	if err != nil {
		t.Fatalf("ListHistory() error = %v", err)
	}

	if q.Get("onlyactive") != "1" || q.Get("page") != "2" {
		t.Errorf("onlyactive=%s page=%s", q.Get("onlyactive"), q.Get("page"))
	}

	if len(history.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(history.Entries))
	}
	entry := history.Entries[0]
	if entry.ID != 991 {
		t.Errorf("ID = %d, want 991", entry.ID)
	}
	// LastBought arrives as Unix seconds.
	if !entry.LastBought.Equal(time.Unix(1699990000, 0)) {
		t.Errorf("LastBought = %v", entry.LastBought)
	}
	if entry.RemainingTime != 2*time.Hour {
		t.Errorf("RemainingTime = %v, want 2h", entry.RemainingTime)
	}
	if entry.ConnectInfo == nil || entry.ConnectInfo.Port != 1080 {
		t.Errorf("ConnectInfo = %+v", entry.ConnectInfo)
	}
	if entry.Note != "office proxy" {
		t.Errorf("Note = %q", entry.Note)
	}
}

func TestClient_BuyProxy(t *testing.T) {
	t.Parallel()
	var q url.Values
	client := newTestClient(t, capture(&q, ok(`{"ServerTime": 1700000000, "CreditsLeft": 99, "HistoryEntry": null}`)))

	purchase, err := client.BuyProxy(context.Background(), &ProxyInfo{ID: 1337})
	if err != nil {
		t.Fatalf("BuyProxy() error = %v", err)
	}
	if q.Get("cmd") != "RegularProxyBuy" || q.Get("proxyid") != "1337" {
		t.Errorf("cmd=%s proxyid=%s", q.Get("cmd"), q.Get("proxyid"))
	}
	if purchase.CreditsLeft != 99 {
		t.Errorf("CreditsLeft = %d, want 99", purchase.CreditsLeft)
	}
	if purchase.Entry != nil {
		t.Errorf("Entry = %+v, want nil", purchase.Entry)
	}
}

func TestClient_BuyProxy_OmittedFields(t *testing.T) {
	t.Parallel()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, ok(`{}`))
	})

	purchase, err := client.BuyProxy(context.Background(), &ProxyInfo{ID: 1})
	if err != nil {
		t.Fatalf("BuyProxy() error = %v", err)
	}
	if !purchase.ServerTime.IsZero() {
		t.Errorf("ServerTime = %v, want zero", purchase.ServerTime)
	}
	if purchase.CreditsLeft != -1 {
		t.Errorf("CreditsLeft = %d, want -1 when omitted", purchase.CreditsLeft)
	}
}

// Pool and rentability guards must fail before any request is sent.
func TestClient_PurchaseGuards(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		call    func(c *Client, p *ProxyInfo) error
		proxy   ProxyInfo
		wantErr error
	}{
		{
			name:    "buy rejects fresh proxy",
			call:    func(c *Client, p *ProxyInfo) error { _, err := c.BuyProxy(context.Background(), p); return err },
			proxy:   ProxyInfo{ID: 1, IsFresh: true},
			wantErr: ErrProxyIsFresh,
		},
		{
			name:    "rent rejects fresh proxy",
			call:    func(c *Client, p *ProxyInfo) error { _, err := c.RentProxy(context.Background(), p); return err },
			proxy:   ProxyInfo{ID: 1, IsFresh: true, RentCost: 10},
			wantErr: ErrProxyIsFresh,
		},
		{
			name:    "rent rejects unrentable proxy",
			call:    func(c *Client, p *ProxyInfo) error { _, err := c.RentProxy(context.Background(), p); return err },
			proxy:   ProxyInfo{ID: 1, RentCost: 0},
			wantErr: ErrNotRentable,
		},
		{
			name:    "fresh buy rejects regular proxy",
			call:    func(c *Client, p *ProxyInfo) error { _, err := c.BuyFreshProxy(context.Background(), p); return err },
			proxy:   ProxyInfo{ID: 1, IsFresh: false},
			wantErr: ErrProxyNotFresh,
		},
		{
			name:    "fresh rent rejects regular proxy",
			call:    func(c *Client, p *ProxyInfo) error { _, err := c.RentFreshProxy(context.Background(), p); return err },
			proxy:   ProxyInfo{ID: 1, IsFresh: false, RentCost: 10},
			wantErr: ErrProxyNotFresh,
		},
		{
			name:    "fresh rent rejects unrentable proxy",
			call:    func(c *Client, p *ProxyInfo) error { _, err := c.RentFreshProxy(context.Background(), p); return err },
			proxy:   ProxyInfo{ID: 1, IsFresh: true, RentCost: 0},
			wantErr: ErrNotRentable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requests := 0
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				requests++
			})

			err := tt.call(client, &tt.proxy)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if requests != 0 {
				t.Errorf("made %d requests, want 0", requests)
			}
		})
	}
}

func TestClient_RentFreshProxy(t *testing.T) {
	t.Parallel()
	var q url.Values
	client := newTestClient(t, capture(&q, ok(`{"CreditsLeft": 80}`)))

	proxy := &ProxyInfo{ID: 55, IsFresh: true, RentCost: 20}
	if _, err := client.RentFreshProxy(context.Background(), proxy); err != nil {
		t.Fatalf("RentFreshProxy() error = %v", err)
	}
	if q.Get("cmd") != "FreshProxyRent" || q.Get("proxyid") != "55" {
		t.Errorf("cmd=%s proxyid=%s", q.Get("cmd"), q.Get("proxyid"))
	}
}

func TestClient_CheckProxy(t *testing.T) {
	t.Parallel()
	var q url.Values
	client := newTestClient(t, capture(&q, ok(`{
		"tests_passed": 3,
		"tests_total": 4,
		"tests_result": "partial",
		"tests_result_str": "3 of 4 tests passed"
	}`)))

	check, err := client.CheckProxy(context.Background(), 1337)
	if err != nil {
		t.Fatalf("CheckProxy() error = %v", err)
	}
	if q.Get("cmd") != "BoughtProxyCheck" {
		t.Errorf("cmd = %s, want BoughtProxyCheck", q.Get("cmd"))
	}
	if check.TestsPassed != 3 || check.TestsTotal != 4 {
		t.Errorf("TestsPassed/TestsTotal = %d/%d, want 3/4", check.TestsPassed, check.TestsTotal)
	}
	if check.ResultText != "3 of 4 tests passed" {
		t.Errorf("ResultText = %q", check.ResultText)
	}
}

func TestClient_RefundProxy(t *testing.T) {
	t.Parallel()
	var q url.Values
	client := newTestClient(t, capture(&q, ok(`{
		"tests_passed": 0,
		"tests_total": 4,
		"tests_result": "failed",
		"tests_result_str": "all tests failed",
		"refund_result": "refunded",
		"refund_result_str": "credits returned"
	}`)))

	refund, err := client.RefundProxy(context.Background(), 1337)
	if err != nil {
		t.Fatalf("RefundProxy() error = %v", err)
	}
	if q.Get("cmd") != "BoughtProxyRefund" {
		t.Errorf("cmd = %s, want BoughtProxyRefund", q.Get("cmd"))
	}
	if refund.RefundResult != "refunded" {
		t.Errorf("RefundResult = %q", refund.RefundResult)
	}
	if refund.TestsPassed != 0 {
		t.Errorf("TestsPassed = %d, want 0", refund.TestsPassed)
	}
}

func TestClient_Renewal(t *testing.T) {
	t.Parallel()

	t.Run("enable", func(t *testing.T) {
		var q url.Values
		client := newTestClient(t, capture(&q, ok(`{"HistoryID": 991, "Enabled": true, "CreditsLeft": 88, "Cost": 2}`)))

		status, err := client.EnableRenewal(context.Background(), 991)
		if err != nil {
			t.Fatalf("EnableRenewal() error = %v", err)
		}
		if q.Get("cmd") != "BoughtProxyRenewEnable" || q.Get("historyid") != "991" {
			t.Errorf("cmd=%s historyid=%s", q.Get("cmd"), q.Get("historyid"))
		}
		if !status.Enabled || status.Cost != 2 || status.CreditsLeft != 88 {
			t.Errorf("status = %+v", status)
		}
	})

	t.Run("disable", func(t *testing.T) {
		var q url.Values
		client := newTestClient(t, capture(&q, ok(`{"HistoryID": 991, "Enabled": false}`)))

		status, err := client.DisableRenewal(context.Background(), 991)
		if err != nil {
			t.Fatalf("DisableRenewal() error = %v", err)
		}
		if q.Get("cmd") != "BoughtProxyRenewDisable" {
			t.Errorf("cmd = %s, want BoughtProxyRenewDisable", q.Get("cmd"))
		}
		if status.Enabled {
			t.Error("Enabled = true, want false")
		}
	})
}

func TestClient_Notes(t *testing.T) {
	t.Parallel()
	emptyOK := `{"status":{"code":209,"message":"OK"},"result":null}`

	t.Run("set", func(t *testing.T) {
		var q url.Values
		client := newTestClient(t, capture(&q, emptyOK))

		if err := client.SetNote(context.Background(), 991, "backup exit"); err != nil {
			t.Fatalf("SetNote() error = %v", err)
		}
		if q.Get("cmd") != "HistoryEntryChangeNote" || q.Get("note") != "backup exit" {
			t.Errorf("cmd=%s note=%s", q.Get("cmd"), q.Get("note"))
		}
	})

	t.Run("clear omits the note parameter", func(t *testing.T) {
		var q url.Values
		client := newTestClient(t, capture(&q, emptyOK))

		if err := client.ClearNote(context.Background(), 991); err != nil {
			t.Fatalf("ClearNote() error = %v", err)
		}
		if q.Has("note") {
			t.Errorf("note = %q, want parameter absent", q.Get("note"))
		}
	})
}

func TestClient_WithHTTPClient(t *testing.T) {
	t.Parallel()
	headerSeen := ""
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headerSeen = r.Header.Get("X-Test")
		fmt.Fprint(w, `{"status":{"code":209,"message":"OK"},"result":null}`)
	}))
	defer server.Close()

	custom := &http.Client{Transport: headerTransport{base: http.DefaultTransport}}
	client, err := New("test-key", WithBaseURL(server.URL), WithHTTPClient(custom))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
	if headerSeen != "1" {
		t.Error("custom HTTP client was not used")
	}
}

type headerTransport struct {
	base http.RoundTripper
}

func (t headerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r.Header.Set("X-Test", "1")
	return t.base.RoundTrip(r)
}

func TestClient_WithHTTPClientAndTimeout(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		fmt.Fprint(w, `{"status":{"code":209,"message":"OK"},"result":null}`)
	}))
	defer server.Close()

	// The timeout must apply even when a custom client is supplied.
	custom := &http.Client{}
	client, err := New("test-key",
		WithBaseURL(server.URL),
		WithHTTPClient(custom),
		WithTimeout(50*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	err = client.Ping(context.Background())
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError from timeout, got %T: %v", err, err)
	}
}
