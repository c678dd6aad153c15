package truesocks

import (
	"fmt"
	"time"

	"github.com/truesocks/client-go/internal/api"
)

// HistoryEntry is one purchase history record.
type HistoryEntry struct {
	ID int64
	// ConnectInfo is nil while the proxy is not connectable.
	ConnectInfo         *ConnectInfo
	Proxy               ProxyInfo
	LastBought          time.Time
	RemainingTime       time.Duration
	IsOnline            bool
	IsFresh             bool
	IsRented            bool
	RefundAvailable     bool
	RenewEnabled        bool
	RenewCountRemaining int64
	IPHasChanged        bool
	// Note is the caller-assigned note; empty when none is set.
	Note string
}

// FormattedRemainingTime renders RemainingTime as hours, minutes, and seconds.
func (h *HistoryEntry) FormattedRemainingTime() string {
	total := int64(h.RemainingTime / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%d Hours %d Minutes %d Seconds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%d Minutes %d Seconds", minutes, seconds)
	default:
		return fmt.Sprintf("%d Seconds", seconds)
	}
}

// History is one page of the purchase history.
type History struct {
	ServerTime     time.Time
	TotalEntries   int
	EntriesPerPage int
	CurrentPage    int
	MaxPages       int
	Entries        []HistoryEntry
}

func historyEntryFromAPI(e api.HistoryEntry) HistoryEntry {
	return HistoryEntry{
		ID:                  e.HistoryID,
		ConnectInfo:         connectInfoFromAPI(e.ConnectInfo.Info),
		Proxy:               proxyFromAPI(e.ProxyInfo),
		LastBought:          time.Unix(e.LastBought, 0),
		RemainingTime:       time.Duration(e.RemainingTime) * time.Second,
		IsOnline:            e.IsOnline,
		IsFresh:             e.IsFresh,
		IsRented:            e.IsRented,
		RefundAvailable:     e.RefundAvailable,
		RenewEnabled:        e.RenewEnabled,
		RenewCountRemaining: e.RenewCountRemaining,
		IPHasChanged:        e.IPHasChanged,
		Note:                e.Note,
	}
}

func historyFromAPI(r *api.ListHistoryResult) *History {
	entries := make([]HistoryEntry, 0, len(r.HistoryList))
	for _, e := range r.HistoryList {
		entries = append(entries, historyEntryFromAPI(e))
	}
	return &History{
		ServerTime:     time.Unix(r.ServerTime, 0),
		TotalEntries:   r.HistoryCount,
		EntriesPerPage: r.HistoryEntriesPerPage,
		CurrentPage:    r.HistoryCurrentPage,
		MaxPages:       r.HistoryMaxPages,
		Entries:        entries,
	}
}
