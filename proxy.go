package truesocks

import (
	"fmt"

	"github.com/truesocks/client-go/internal/api"
)

// ConnectionType classifies a proxy's upstream connection.
type ConnectionType string

// Connection types reported by the API.
const (
	ConnectionMobile       ConnectionType = "Mobile"
	ConnectionDSL          ConnectionType = "DSL"
	ConnectionHosting      ConnectionType = "Hosting"
	ConnectionUnknown      ConnectionType = "Unknown"
	ConnectionNotAvailable ConnectionType = "N/A"
)

// BlacklistType classifies a blacklist listing.
type BlacklistType string

// Blacklist types reported by the API.
const (
	BlacklistOpenProxy BlacklistType = "Open Proxy"
	BlacklistWebAbuse  BlacklistType = "Web Abuse"
	BlacklistEmailSpam BlacklistType = "Email Spam"
)

// BlacklistEntry is one blacklist listing for a proxy.
type BlacklistEntry struct {
	ID   string
	Name string
	Type BlacklistType
	Desc string
	// Link to the blacklist's documentation; empty when none is published.
	Link string
}

// ProxyInfo describes a proxy resource as returned by the API. It is a
// value object: immutable once received, owned by the caller.
type ProxyInfo struct {
	ID int
	// BuyCost is the credit cost of a shared buy.
	BuyCost int
	// RentCost is the credit cost of a private rent; 0 when the proxy is
	// not offered for private rent.
	RentCost int
	// IsFresh reports whether the proxy is in the fresh pool.
	IsFresh bool
	// IP is empty until the proxy has been bought.
	IP            string
	Hostname      string
	ISP           string
	CountryCode   string
	Country       string
	Region        string
	City          string
	ZipCode       string
	Timezone      string
	Connection    ConnectionType
	Ping          float64
	Speed         int64 // bytes per second
	UptimeQuality int
	// Blacklist is nil when the proxy is on no blacklist.
	Blacklist []BlacklistEntry
	// Distance from the search point; only set by SearchByZip.
	Distance *float64
}

// FormattedSpeed renders Speed as a human-readable rate.
func (p *ProxyInfo) FormattedSpeed() string {
	const (
		kilobyte = 1024.0
		megabyte = kilobyte * 1024.0
		gigabyte = megabyte * 1024.0
	)

	speed := float64(p.Speed)
	switch {
	case speed >= gigabyte:
		return fmt.Sprintf("%.2f GB/s", speed/gigabyte)
	case speed >= megabyte:
		return fmt.Sprintf("%.2f MB/s", speed/megabyte)
	case speed >= kilobyte:
		return fmt.Sprintf("%.2f KB/s", speed/kilobyte)
	default:
		return fmt.Sprintf("%d B/s", p.Speed)
	}
}

// ConnectInfo is the connection endpoint for a bought proxy.
type ConnectInfo struct {
	IP        string
	Port      int
	SessionID string
}

func proxyFromAPI(p api.ProxyInfo) ProxyInfo {
	blacklist := make([]BlacklistEntry, 0, len(p.Blacklist))
	for _, b := range p.Blacklist {
		blacklist = append(blacklist, BlacklistEntry{
			ID:   b.ID,
			Name: b.Name,
			Type: BlacklistType(b.Type),
			Desc: b.Desc,
			Link: b.Link,
		})
	}
	if len(blacklist) == 0 {
		blacklist = nil
	}

	return ProxyInfo{
		ID:            p.ProxyID,
		BuyCost:       p.CostBuy,
		RentCost:      p.CostRent,
		IsFresh:       p.IsFresh,
		IP:            string(p.IP),
		Hostname:      p.Hostname,
		ISP:           p.ISP,
		CountryCode:   p.CountryCode,
		Country:       p.Country,
		Region:        p.Region,
		City:          p.City,
		ZipCode:       string(p.ZipCode),
		Timezone:      p.Timezone,
		Connection:    ConnectionType(p.Connect),
		Ping:          p.Ping,
		Speed:         p.Speed,
		UptimeQuality: p.UpTimeQuality,
		Blacklist:     blacklist,
		Distance:      p.Distance,
	}
}

func proxiesFromAPI(list []api.ProxyInfo) []ProxyInfo {
	proxies := make([]ProxyInfo, 0, len(list))
	for _, p := range list {
		proxies = append(proxies, proxyFromAPI(p))
	}
	return proxies
}

func connectInfoFromAPI(ci *api.ConnectInfo) *ConnectInfo {
	if ci == nil {
		return nil
	}
	return &ConnectInfo{
		IP:        ci.ConnectIP,
		Port:      ci.ConnectPort,
		SessionID: ci.ConnectSessionID,
	}
}
