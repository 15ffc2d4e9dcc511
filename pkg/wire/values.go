package wire

import (
	"encoding/binary"
	"fmt"
	"net/netip"
)

// Revision is a major/minor revision pair.
type Revision struct {
	Major uint8
	Minor uint8
}

// String returns "major.minor".
func (r Revision) String() string {
	return fmt.Sprintf("%d.%d", r.Major, r.Minor)
}

// MAC is a six byte physical address.
type MAC [6]byte

// String returns the address in colon notation.
func (m MAC) String() string {
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", m[0], m[1], m[2], m[3], m[4], m[5])
}

// Uint6 is a fixed array of six UINT values.
type Uint6 [6]uint16

// NetworkConfig is the interface configuration block of the TCP/IP
// interface object. Addresses that are not IPv4 encode as zero.
type NetworkConfig struct {
	IPAddress   netip.Addr
	NetworkMask netip.Addr
	Gateway     netip.Addr
	NameServer  netip.Addr
	NameServer2 netip.Addr
	DomainName  string
}

func (c *NetworkConfig) addresses() [5]netip.Addr {
	return [5]netip.Addr{c.IPAddress, c.NetworkMask, c.Gateway, c.NameServer, c.NameServer2}
}

// addrValue returns the address as a host-order number, the form in which
// it is written as a UDINT.
func addrValue(a netip.Addr) uint32 {
	if !a.Is4() {
		return 0
	}
	b := a.As4()
	return binary.BigEndian.Uint32(b[:])
}
