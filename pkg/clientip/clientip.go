package clientip

import (
	"fmt"
	"net/http"
	"net/netip"
	"strings"
)

// Headers lists the forwarding headers consulted, in priority order, when
// the request comes from a trusted proxy.
var Headers = []string{
	"CF-Connecting-IP",
	"X-Real-IP",
	"X-Forwarded-For",
}

type Config struct {
	// TrustedProxies holds the addresses or CIDR ranges of the proxies
	// whose forwarding headers are believed.
	TrustedProxies []string `env:"CLIENTIP_TRUSTED_PROXIES" envSeparator:","`
}

// Resolver picks the client address of a request. Forwarding headers are
// read only when the direct peer is a trusted proxy. The zero value trusts
// no proxy and always reports the peer address.
type Resolver struct {
	trusted []netip.Prefix
}

func NewResolver(cfg Config) (*Resolver, error) {
	r := &Resolver{}
	for _, s := range cfg.TrustedProxies {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		p, err := parsePrefix(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidTrustedProxy, s)
		}
		r.trusted = append(r.trusted, p)
	}
	return r, nil
}

func parsePrefix(s string) (netip.Prefix, error) {
	if strings.Contains(s, "/") {
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Prefix{}, err
		}
		return p.Masked(), nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, err
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

func (r *Resolver) trusts(addr netip.Addr) bool {
	if r == nil {
		return false
	}
	for _, p := range r.trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// FromRequest returns the normalized client address, or "" if RemoteAddr
// holds no valid IP.
func (r *Resolver) FromRequest(req *http.Request) string {
	peer, ok := remoteAddr(req.RemoteAddr)
	if !ok {
		return ""
	}
	if !r.trusts(peer) {
		return peer.String()
	}

	for _, h := range Headers {
		values := req.Header.Values(h)
		if len(values) == 0 {
			continue
		}
		if h == "X-Forwarded-For" {
			if ip, ok := r.forwardedFor(values); ok {
				return ip.String()
			}
			continue
		}
		if ip, ok := parseAddr(values[0]); ok {
			return ip.String()
		}
	}
	return peer.String()
}

// forwardedFor walks the chain from the nearest hop and returns the first
// address that is not a trusted proxy. Entries left of an unparsable one
// are not believed.
func (r *Resolver) forwardedFor(values []string) (netip.Addr, bool) {
	var hops []string
	for _, v := range values {
		hops = append(hops, strings.Split(v, ",")...)
	}

	var last netip.Addr
	for i := len(hops) - 1; i >= 0; i-- {
		ip, ok := parseAddr(hops[i])
		if !ok {
			break
		}
		if !r.trusts(ip) {
			return ip, true
		}
		last = ip
	}
	return last, last.IsValid()
}

// FromRequest resolves the client address without trusting any proxy.
func FromRequest(req *http.Request) string {
	var direct *Resolver
	return direct.FromRequest(req)
}

func remoteAddr(s string) (netip.Addr, bool) {
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap.Addr().Unmap().WithZone(""), true
	}
	return parseAddr(s)
}

func parseAddr(s string) (netip.Addr, bool) {
	addr, err := netip.ParseAddr(strings.TrimSpace(s))
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap().WithZone(""), true
}
