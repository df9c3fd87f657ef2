// Package clientip resolves the address of the client behind proxies.
//
// A Resolver reads the forwarding headers listed in Headers, first match
// wins, but only when the direct peer is one of the configured trusted
// proxies. X-Forwarded-For is walked from the nearest hop, skipping trusted
// proxies. Any other request is attributed to its RemoteAddr, so a client
// cannot pick its own address by setting a header.
//
//	ips, err := clientip.NewResolver(clientip.Config{TrustedProxies: []string{"10.0.0.0/8"}})
//	r.Use(ips.Middleware)
//	log := logger.New(logger.WithContextExtractors(clientip.LoggerExtractor()))
//
// The package level FromRequest trusts no proxy.
package clientip
