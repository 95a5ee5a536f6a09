// Package netaddr provides a version-independent IP address and port pair
// that renders itself through strfmt, the way a socket address is usually
// logged or displayed (fly::net::Endpoint, endpoint.hpp).
package netaddr

import (
	"fmt"
	"net/netip"
	"strconv"

	"github.com/tinywasm/strfmt/internal/fmtparse"
	"github.com/tinywasm/strfmt/internal/render"
)

// Endpoint pairs an IP address (v4 or v6) with a port.
type Endpoint struct {
	addr netip.Addr
	port uint16
}

// NewEndpoint constructs an Endpoint from an address and port.
func NewEndpoint(addr netip.Addr, port uint16) Endpoint {
	return Endpoint{addr: addr, port: port}
}

// ParseEndpoint parses "host:port", with IPv6 hosts surrounded by square
// brackets (e.g. "[::1]:80"), matching endpoint.hpp's from_string.
func ParseEndpoint(s string) (Endpoint, error) {
	host, portStr, err := splitHostPort(s)
	if err != nil {
		return Endpoint{}, err
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return Endpoint{}, fmt.Errorf("netaddr: invalid address %q: %w", host, err)
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return Endpoint{}, fmt.Errorf("netaddr: invalid port %q: %w", portStr, err)
	}
	return Endpoint{addr: addr, port: uint16(port)}, nil
}

func splitHostPort(s string) (host, port string, err error) {
	if len(s) == 0 {
		return "", "", fmt.Errorf("netaddr: empty endpoint")
	}
	if s[0] == '[' {
		end := -1
		for i := 1; i < len(s); i++ {
			if s[i] == ']' {
				end = i
				break
			}
		}
		if end < 0 || end+1 >= len(s) || s[end+1] != ':' {
			return "", "", fmt.Errorf("netaddr: malformed IPv6 endpoint %q", s)
		}
		return s[1:end], s[end+2:], nil
	}
	sep := -1
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == ':' {
			sep = i
			break
		}
	}
	if sep < 0 {
		return "", "", fmt.Errorf("netaddr: missing port in %q", s)
	}
	return s[:sep], s[sep+1:], nil
}

// IsIPv4 reports whether the endpoint's address is IPv4.
func (e Endpoint) IsIPv4() bool { return e.addr.Is4() }

// IsIPv6 reports whether the endpoint's address is IPv6.
func (e Endpoint) IsIPv6() bool { return e.addr.Is6() && !e.addr.Is4In6() }

// Address returns the endpoint's IP address.
func (e Endpoint) Address() netip.Addr { return e.addr }

// Port returns the endpoint's port.
func (e Endpoint) Port() uint16 { return e.port }

// SetAddress replaces the endpoint's IP address.
func (e *Endpoint) SetAddress(addr netip.Addr) { e.addr = addr }

// SetPort replaces the endpoint's port.
func (e *Endpoint) SetPort(port uint16) { e.port = port }

// String renders the endpoint the same way FormatText does, for fmt.Stringer
// callers that never touch strfmt directly.
func (e Endpoint) String() string {
	if e.IsIPv6() {
		return "[" + e.addr.String() + "]:" + strconv.Itoa(int(e.port))
	}
	return e.addr.String() + ":" + strconv.Itoa(int(e.port))
}

// FormatText implements strfmt.Formatter[byte]: "{}" on an Endpoint renders
// "host:port", bracketing IPv6 hosts. A literal width, fill and alignment
// are honored; a width given by a nested field is not resolved and leaves
// the text unpadded. The specifier parser rejects the other options on a
// user-defined argument, so they never reach FormatText.
func (e Endpoint) FormatText(w *render.Writer[byte], spec fmtparse.Specifier) error {
	s := e.String()
	units := make([]byte, 0, len(s)+2)
	units = append(units, s...)

	if !spec.Width.Set || spec.Width.IsPosition || len(units) >= spec.Width.Value {
		w.WriteUnits(units)
		return nil
	}

	pad := spec.Width.Value - len(units)
	fill := byte(' ')
	if spec.HasFill {
		fill = byte(spec.Fill)
	}
	align := spec.Alignment
	if align == fmtparse.AlignDefault {
		align = fmtparse.AlignLeft
	}
	switch align {
	case fmtparse.AlignRight:
		for i := 0; i < pad; i++ {
			w.WriteUnit(fill)
		}
		w.WriteUnits(units)
	case fmtparse.AlignCenter:
		left := pad / 2
		for i := 0; i < left; i++ {
			w.WriteUnit(fill)
		}
		w.WriteUnits(units)
		for i := 0; i < pad-left; i++ {
			w.WriteUnit(fill)
		}
	default:
		w.WriteUnits(units)
		for i := 0; i < pad; i++ {
			w.WriteUnit(fill)
		}
	}
	return nil
}
