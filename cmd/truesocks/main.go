// Command truesocks provides a CLI for the TrueSocks proxy API.
//
// Usage:
//
//	truesocks ping
//	truesocks account
//	truesocks list
//	truesocks search US 10001 --range 50 --units mi
//	truesocks history --only-active
//	truesocks buy <proxyid>
//	truesocks rent <proxyid> --fresh
//	truesocks check <proxyid>
//	truesocks refund <proxyid>
//	truesocks renew enable <historyid>
//	truesocks note set <historyid> "text"
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	truesocks "github.com/truesocks/client-go"
)

var (
	// Global flags
	verbose bool
	apiKey  string
	baseURL string
	timeout int

	version = "2.1.0"
)

func main() {
	// Best effort: a missing .env file is fine.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "truesocks",
		Short:   "TrueSocks - manage proxies through the TrueSocks API",
		Version: version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if apiKey == "" {
				apiKey = os.Getenv("TRUESOCKS_API_KEY")
			}
			if baseURL == "" {
				baseURL = os.Getenv("TRUESOCKS_URL")
			}
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable request-level debug logging")
	rootCmd.PersistentFlags().StringVarP(&apiKey, "api-key", "K", "", "API key (or set TRUESOCKS_API_KEY env var)")
	rootCmd.PersistentFlags().StringVarP(&baseURL, "base-url", "B", "", "API base URL (default: "+truesocks.DefaultBaseURL+")")
	rootCmd.PersistentFlags().IntVarP(&timeout, "timeout", "T", 30, "Request timeout in seconds")

	rootCmd.AddCommand(newPingCmd())
	rootCmd.AddCommand(newAccountCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newBuyCmd())
	rootCmd.AddCommand(newRentCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newRefundCmd())
	rootCmd.AddCommand(newRenewCmd())
	rootCmd.AddCommand(newNoteCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newClient builds a client from the global flags.
func newClient() *truesocks.Client {
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "Error: API key required. Use -K/--api-key or set TRUESOCKS_API_KEY environment variable.")
		os.Exit(1)
	}

	opts := []truesocks.Option{
		truesocks.WithTimeout(time.Duration(timeout) * time.Second),
	}
	if baseURL != "" {
		opts = append(opts, truesocks.WithBaseURL(baseURL))
	}
	if verbose {
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
		opts = append(opts, truesocks.WithLogger(logger))
	}

	client, err := truesocks.New(apiKey, opts...)
	if err != nil {
		fatal("create client: %v", err)
	}
	return client
}

func cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(timeout)*time.Second)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func parseID(arg, what string) int {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fatal("invalid %s: %s", what, arg)
	}
	return id
}

func printJSON(v interface{}) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(data))
}

func newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the API is reachable and accepts the key",
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			ctx, cancel := cmdContext()
			defer cancel()

			if err := client.Ping(ctx); err != nil {
				fatal("%v", err)
			}
			fmt.Println("OK")
		},
	}
}

func newAccountCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "account",
		Short: "Show account status and remaining credits",
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			ctx, cancel := cmdContext()
			defer cancel()

			status, err := client.AccountStatus(ctx)
			if err != nil {
				fatal("%v", err)
			}

			if outputJSON {
				printJSON(status)
				return
			}
			fmt.Printf("User:    %s <%s>\n", status.UserID, status.Email)
			fmt.Printf("Plan:    %s (active: %v)\n", status.Plan, status.Active)
			fmt.Printf("Credits: %d (expire %s)\n", status.Credits, status.Expires.Format(time.RFC3339))
			fmt.Printf("Created: %s\n", status.Created.Format(time.RFC3339))
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output result as JSON")
	return cmd
}

func printProxies(proxies []truesocks.ProxyInfo) {
	for _, p := range proxies {
		pool := "regular"
		if p.IsFresh {
			pool = "fresh"
		}
		fmt.Printf("%8d  %-2s %-20s %-8s %-8s buy:%d rent:%d  %s\n",
			p.ID, p.CountryCode, p.City, p.Connection, pool,
			p.BuyCost, p.RentCost, p.FormattedSpeed())
	}
}

func newListCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all proxies currently online",
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			ctx, cancel := cmdContext()
			defer cancel()

			list, err := client.ListOnline(ctx)
			if err != nil {
				fatal("%v", err)
			}

			if outputJSON {
				printJSON(list)
				return
			}
			fmt.Printf("%d proxies online (updated %s)\n", list.ProxyCount, list.LastUpdate.Format(time.RFC3339))
			printProxies(list.Proxies)
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output result as JSON")
	return cmd
}

func newSearchCmd() *cobra.Command {
	var (
		units       string
		searchRange int
		outputJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "search <countrycode> <zipcode>",
		Short: "Search online proxies around a zip code",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			ctx, cancel := cmdContext()
			defer cancel()

			var opts []truesocks.SearchOption
			if units != "" {
				opts = append(opts, truesocks.WithUnits(units))
			}
			if searchRange > 0 {
				opts = append(opts, truesocks.WithSearchRange(searchRange))
			}

			result, err := client.SearchByZip(ctx, args[0], args[1], opts...)
			if err != nil {
				fatal("%v", err)
			}

			if outputJSON {
				printJSON(result)
				return
			}
			fmt.Printf("%d proxies within %d %s of %s %s\n",
				result.ProxyCount, result.SearchRange, result.SearchUnits,
				result.SearchCountryCode, result.SearchZipCode)
			printProxies(result.Proxies)
		},
	}

	cmd.Flags().StringVar(&units, "units", "", "Distance units for the search radius")
	cmd.Flags().IntVar(&searchRange, "range", 0, "Search radius around the zip code")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output result as JSON")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	var (
		onlyActive bool
		page       int
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the purchase history",
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			ctx, cancel := cmdContext()
			defer cancel()

			var opts []truesocks.HistoryOption
			if onlyActive {
				opts = append(opts, truesocks.WithOnlyActive())
			}
			if page > 0 {
				opts = append(opts, truesocks.WithPage(page))
			}

			history, err := client.ListHistory(ctx, opts...)
			if err != nil {
				fatal("%v", err)
			}

			if outputJSON {
				printJSON(history)
				return
			}
			fmt.Printf("%d entries, page %d/%d\n", history.TotalEntries, history.CurrentPage, history.MaxPages)
			for _, e := range history.Entries {
				state := "offline"
				if e.IsOnline {
					state = "online"
				}
				fmt.Printf("%10d  proxy %d  %-7s  remaining %s",
					e.ID, e.Proxy.ID, state, e.FormattedRemainingTime())
				if e.Note != "" {
					fmt.Printf("  (%s)", e.Note)
				}
				fmt.Println()
			}
		},
	}

	cmd.Flags().BoolVar(&onlyActive, "only-active", false, "Show only active entries")
	cmd.Flags().IntVar(&page, "page", 0, "History page to fetch (1-based)")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output result as JSON")
	return cmd
}

// findProxy looks the proxy up in the online list so pool membership and
// rentability can be validated before spending credits.
func findProxy(ctx context.Context, client *truesocks.Client, proxyID int) *truesocks.ProxyInfo {
	list, err := client.ListOnline(ctx)
	if err != nil {
		fatal("%v", err)
	}
	for i := range list.Proxies {
		if list.Proxies[i].ID == proxyID {
			return &list.Proxies[i]
		}
	}
	fatal("proxy %d is not online", proxyID)
	return nil
}

func printPurchase(p *truesocks.Purchase, outputJSON bool) {
	if outputJSON {
		printJSON(p)
		return
	}
	fmt.Println("Purchase complete")
	if p.CreditsLeft >= 0 {
		fmt.Printf("Credits left: %d\n", p.CreditsLeft)
	}
	if p.Entry != nil && p.Entry.ConnectInfo != nil {
		ci := p.Entry.ConnectInfo
		fmt.Printf("Connect: %s:%d (session %s)\n", ci.IP, ci.Port, ci.SessionID)
	}
}

func newBuyCmd() *cobra.Command {
	var (
		fresh      bool
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "buy <proxyid>",
		Short: "Buy shared access to a proxy",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			ctx, cancel := cmdContext()
			defer cancel()

			proxy := findProxy(ctx, client, parseID(args[0], "proxy ID"))

			var purchase *truesocks.Purchase
			var err error
			if fresh {
				purchase, err = client.BuyFreshProxy(ctx, proxy)
			} else {
				purchase, err = client.BuyProxy(ctx, proxy)
			}
			if err != nil {
				fatal("%v", err)
			}
			printPurchase(purchase, outputJSON)
		},
	}

	cmd.Flags().BoolVar(&fresh, "fresh", false, "Buy from the fresh pool")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output result as JSON")
	return cmd
}

func newRentCmd() *cobra.Command {
	var (
		fresh      bool
		outputJSON bool
	)

	cmd := &cobra.Command{
		Use:   "rent <proxyid>",
		Short: "Rent a proxy for private use",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			ctx, cancel := cmdContext()
			defer cancel()

			proxy := findProxy(ctx, client, parseID(args[0], "proxy ID"))

			var purchase *truesocks.Purchase
			var err error
			if fresh {
				purchase, err = client.RentFreshProxy(ctx, proxy)
			} else {
				purchase, err = client.RentProxy(ctx, proxy)
			}
			if err != nil {
				fatal("%v", err)
			}
			printPurchase(purchase, outputJSON)
		},
	}

	cmd.Flags().BoolVar(&fresh, "fresh", false, "Rent from the fresh pool")
	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output result as JSON")
	return cmd
}

func newCheckCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "check <proxyid>",
		Short: "Run connectivity tests against a bought proxy",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			ctx, cancel := cmdContext()
			defer cancel()

			check, err := client.CheckProxy(ctx, parseID(args[0], "proxy ID"))
			if err != nil {
				fatal("%v", err)
			}

			if outputJSON {
				printJSON(check)
				return
			}
			fmt.Printf("%d/%d tests passed: %s\n", check.TestsPassed, check.TestsTotal, check.ResultText)
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output result as JSON")
	return cmd
}

func newRefundCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "refund <proxyid>",
		Short: "Test a bought proxy and refund it if the tests fail",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			ctx, cancel := cmdContext()
			defer cancel()

			refund, err := client.RefundProxy(ctx, parseID(args[0], "proxy ID"))
			if err != nil {
				fatal("%v", err)
			}

			if outputJSON {
				printJSON(refund)
				return
			}
			fmt.Printf("%d/%d tests passed: %s\n", refund.TestsPassed, refund.TestsTotal, refund.ResultText)
			fmt.Printf("Refund: %s\n", refund.RefundResultText)
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "Output result as JSON")
	return cmd
}

func newRenewCmd() *cobra.Command {
	renewCmd := &cobra.Command{
		Use:   "renew",
		Short: "Manage automatic renewal of a history entry",
	}

	var outputJSON bool

	enableCmd := &cobra.Command{
		Use:   "enable <historyid>",
		Short: "Enable automatic renewal",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			ctx, cancel := cmdContext()
			defer cancel()

			status, err := client.EnableRenewal(ctx, int64(parseID(args[0], "history ID")))
			if err != nil {
				fatal("%v", err)
			}

			if outputJSON {
				printJSON(status)
				return
			}
			fmt.Printf("Renewal enabled (cost %d, credits left %d)\n", status.Cost, status.CreditsLeft)
		},
	}

	disableCmd := &cobra.Command{
		Use:   "disable <historyid>",
		Short: "Disable automatic renewal",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			ctx, cancel := cmdContext()
			defer cancel()

			status, err := client.DisableRenewal(ctx, int64(parseID(args[0], "history ID")))
			if err != nil {
				fatal("%v", err)
			}

			if outputJSON {
				printJSON(status)
				return
			}
			fmt.Println("Renewal disabled")
		},
	}

	renewCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output result as JSON")
	renewCmd.AddCommand(enableCmd)
	renewCmd.AddCommand(disableCmd)
	return renewCmd
}

func newNoteCmd() *cobra.Command {
	noteCmd := &cobra.Command{
		Use:   "note",
		Short: "Manage the note on a history entry",
	}

	setCmd := &cobra.Command{
		Use:   "set <historyid> <text>",
		Short: "Set the note",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			ctx, cancel := cmdContext()
			defer cancel()

			if err := client.SetNote(ctx, int64(parseID(args[0], "history ID")), args[1]); err != nil {
				fatal("%v", err)
			}
			fmt.Println("Note set")
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear <historyid>",
		Short: "Remove the note",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			client := newClient()
			ctx, cancel := cmdContext()
			defer cancel()

			if err := client.ClearNote(ctx, int64(parseID(args[0], "history ID"))); err != nil {
				fatal("%v", err)
			}
			fmt.Println("Note cleared")
		},
	}

	noteCmd.AddCommand(setCmd)
	noteCmd.AddCommand(clearCmd)
	return noteCmd
}
