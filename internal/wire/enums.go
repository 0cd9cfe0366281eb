package wire

// Type is a DNS/mDNS resource record (or question) type tag. Unrecognized
// values are preserved as-is rather than rejected — downstream consumers
// pattern-match on the constants they care about and treat everything
// else as opaque (spec.md section 6's "MUST tolerate unknown record
// types").
type Type uint16

const (
	TypeA     Type = 1
	TypeNS    Type = 2
	TypeCNAME Type = 5
	TypeSOA   Type = 6
	TypePTR   Type = 12
	TypeHINFO Type = 13
	TypeMX    Type = 15
	TypeTXT   Type = 16
	TypeAAAA  Type = 28
	TypeSRV   Type = 33
	TypeOPT   Type = 41
	TypeNSEC  Type = 47
	TypeWKS   Type = 11

	// Pseudo-types: legal only in the question section's QTYPE field.
	TypeAXFR  Type = 252
	TypeMAILB Type = 253
	TypeMAILA Type = 254
	TypeANY   Type = 255
)

// String names the well-known types; unknown values render as "TYPE<n>"
// in the style dig/BIND use for unrecognized tags.
func (t Type) String() string {
	switch t {
	case TypeA:
		return "A"
	case TypeNS:
		return "NS"
	case TypeCNAME:
		return "CNAME"
	case TypeSOA:
		return "SOA"
	case TypePTR:
		return "PTR"
	case TypeHINFO:
		return "HINFO"
	case TypeMX:
		return "MX"
	case TypeTXT:
		return "TXT"
	case TypeAAAA:
		return "AAAA"
	case TypeSRV:
		return "SRV"
	case TypeOPT:
		return "OPT"
	case TypeNSEC:
		return "NSEC"
	case TypeWKS:
		return "WKS"
	case TypeAXFR:
		return "AXFR"
	case TypeMAILB:
		return "MAILB"
	case TypeMAILA:
		return "MAILA"
	case TypeANY:
		return "ANY"
	default:
		return unknownTypeName(t)
	}
}

func unknownTypeName(t Type) string {
	const digits = "0123456789"
	if t == 0 {
		return "TYPE0"
	}
	var buf [5]byte
	i := len(buf)
	v := t
	for v > 0 {
		i--
		buf[i] = digits[v%10]
		v /= 10
	}
	return "TYPE" + string(buf[i:])
}

// Class is a DNS/mDNS resource record (or question) class tag.
type Class uint16

const (
	ClassIN  Class = 1
	ClassCS  Class = 2
	ClassCH  Class = 3
	ClassHS  Class = 4
	ClassANY Class = 255
)

// String names the well-known classes; unknown values render as
// "CLASS<n>" in the dig/BIND style.
func (c Class) String() string {
	switch c {
	case ClassIN:
		return "IN"
	case ClassCS:
		return "CS"
	case ClassCH:
		return "CH"
	case ClassHS:
		return "HS"
	case ClassANY:
		return "ANY"
	default:
		return unknownClassName(c)
	}
}

func unknownClassName(c Class) string {
	const digits = "0123456789"
	if c == 0 {
		return "CLASS0"
	}
	var buf [5]byte
	i := len(buf)
	v := c
	for v > 0 {
		i--
		buf[i] = digits[v%10]
		v /= 10
	}
	return "CLASS" + string(buf[i:])
}

// classHighBit is the mDNS QU/cache-flush bit: the high bit of the
// 16-bit class field (RFC 6762 sections 5.4 and 10.2). It is carried
// separately from the 15-bit class value rather than folded into it, so
// neither bit is ever silently normalized away.
const classHighBit uint16 = 0x8000

// splitClass separates the mDNS high bit from the 15-bit class value.
func splitClass(raw uint16) (Class, bool) {
	return Class(raw &^ classHighBit), raw&classHighBit != 0
}
