// Package truesocks provides a Go client SDK for the TrueSocks API (v2.1),
// a service for buying and renting SOCKS proxies.
//
// The SDK maps typed methods one-to-one onto remote API commands: listing
// online proxies, searching by zip code, buying and renting from the regular
// and fresh pools, checking and refunding bought proxies, managing renewals
// and history notes, and querying account status.
//
// Basic usage:
//
//	client, err := truesocks.New("your-api-key")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	online, err := client.ListOnline(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, proxy := range online.Proxies {
//	    fmt.Printf("%d %s %s (%s)\n", proxy.ID, proxy.Country, proxy.City, proxy.FormattedSpeed())
//	}
package truesocks
