package wire

import "net"

// RData is the TYPE-discriminated payload of a resource record. Each
// concrete type below is one tagged variant (spec.md section 9's
// "polymorphic RDATA" design note); Opaque is the Unknown(n) fallback
// that every decoder not named in spec.md's table collapses into.
type RData interface {
	isRData()
}

// AData is the RDATA of an A record: a 4-byte IPv4 address.
type AData struct{ Addr net.IP }

// AAAAData is the RDATA of an AAAA record: a 16-byte IPv6 address.
type AAAAData struct{ Addr net.IP }

// NameData is the RDATA shape shared by PTR, CNAME and NS records: a
// single (possibly compressed) name.
type NameData struct{ Target Name }

// TXTData is the RDATA of a TXT record: the raw sequence of
// length-prefixed character-strings, preserved as seen (spec.md section
// 4.7: "An empty RDATA is legal... preserve as seen").
type TXTData struct{ Strings [][]byte }

// SRVData is the RDATA of an SRV record (RFC 2782).
type SRVData struct {
	Priority uint16
	Weight   uint16
	Port     uint16
	Target   Name
}

// SOAData is the RDATA of an SOA record.
type SOAData struct {
	MName, RName                              Name
	Serial, Refresh, Retry, Expire, Minimum uint32
}

// MXData is the RDATA of an MX record.
type MXData struct {
	Preference uint16
	Exchange   Name
}

// EDNSOption is one <code, bytes> option carried in an OPT record's
// RDATA (RFC 6891 section 6.1.2). Option bodies are opaque: spec.md's
// Non-goals exclude interpreting them beyond length accounting.
type EDNSOption struct {
	Code uint16
	Data []byte
}

// OPTData is the RDATA of an OPT pseudo-record. UDPPayloadSize and the
// extended RCODE/version/DO bits live in the record's CLASS and TTL
// fields respectively (spec.md section 4.7), not here.
type OPTData struct {
	Options []EDNSOption
}

// NSECData is the RDATA of an NSEC record (RFC 4034 section 4.1),
// preserved without DNSSEC semantics per spec.md's Non-goals: the type
// bitmap is kept as opaque bytes, not decoded into a set of types.
type NSECData struct {
	NextDomain Name
	TypeBitmap []byte
}

// HINFOData is the RDATA of a HINFO record (RFC 1035 section 3.3.2): two
// character-strings, CPU and OS. Not present in spec.md's RDATA table; a
// clean-room addition rather than something any decoder fell back to.
type HINFOData struct {
	CPU []byte
	OS  []byte
}

// WKSData is the RDATA of a WKS record (RFC 1035 section 3.4.2): an
// address, protocol number, and a bitmap of supported ports. Not present
// in spec.md's RDATA table; a clean-room addition rather than something
// any decoder fell back to.
type WKSData struct {
	Address  [4]byte
	Protocol byte
	Bitmap   []byte
}

// OpaqueData is the Unknown(n) fallback: RDLENGTH bytes copied verbatim,
// used for any type not named in spec.md's RDATA table.
type OpaqueData struct{ Bytes []byte }

func (AData) isRData()       {}
func (AAAAData) isRData()    {}
func (NameData) isRData()    {}
func (TXTData) isRData()     {}
func (SRVData) isRData()     {}
func (SOAData) isRData()     {}
func (MXData) isRData()      {}
func (OPTData) isRData()     {}
func (NSECData) isRData()    {}
func (HINFOData) isRData()   {}
func (WKSData) isRData()     {}
func (OpaqueData) isRData()  {}

// decodeRData dispatches on rrType and decodes exactly rdlen bytes of
// RDATA starting at the cursor's current offset. On a nil error the
// cursor is positioned at rdataStart+rdlen: every branch either advances
// it there directly or returns an error (RDataLengthMismatch,
// BadFixedRData or Truncated) instead of leaving it somewhere else
// (spec.md section 4.6's invariant).
func decodeRData(c *cursor, rrType Type, rawClass uint16, ttl uint32, rdlen int) (RData, error) {
	start := c.offset()
	end := start + rdlen

	switch rrType {
	case TypeA:
		b, err := fixedRData(c, rrType, rdlen, 4)
		if err != nil {
			return nil, err
		}
		return AData{Addr: net.IP(b)}, nil

	case TypeAAAA:
		b, err := fixedRData(c, rrType, rdlen, 16)
		if err != nil {
			return nil, err
		}
		return AAAAData{Addr: net.IP(b)}, nil

	case TypePTR, TypeCNAME, TypeNS:
		name, consumed, err := decodeNameRData(c, rrType, rdlen)
		if err != nil {
			return nil, err
		}
		_ = consumed
		return NameData{Target: name}, nil

	case TypeTXT:
		strs, err := decodeCharStrings(c, rdlen)
		if err != nil {
			return nil, err
		}
		return TXTData{Strings: strs}, nil

	case TypeSRV:
		if rdlen < 6 {
			return nil, &ParseError{Kind: BadFixedRData, Type: uint16(rrType), Need: 6, Have: rdlen}
		}
		priority, err := c.readU16("rdata")
		if err != nil {
			return nil, err
		}
		weight, err := c.readU16("rdata")
		if err != nil {
			return nil, err
		}
		port, err := c.readU16("rdata")
		if err != nil {
			return nil, err
		}
		nameStart := c.offset()
		name, wireLen, err := decodeName(c, nameStart)
		if err != nil {
			return nil, err
		}
		c.seek(nameStart + wireLen)
		if 6+wireLen != rdlen {
			return nil, &ParseError{Kind: RDataLengthMismatch, Type: uint16(rrType), Declared: rdlen, Actual: 6 + wireLen}
		}
		return SRVData{Priority: priority, Weight: weight, Port: port, Target: name}, nil

	case TypeSOA:
		mname, err := decodeNameField(c)
		if err != nil {
			return nil, err
		}
		rname, err := decodeNameField(c)
		if err != nil {
			return nil, err
		}
		if c.offset()+20 > end {
			return nil, truncated("rdata", 20, end-c.offset())
		}
		serial, err := c.readU32("rdata")
		if err != nil {
			return nil, err
		}
		refresh, err := c.readU32("rdata")
		if err != nil {
			return nil, err
		}
		retry, err := c.readU32("rdata")
		if err != nil {
			return nil, err
		}
		expire, err := c.readU32("rdata")
		if err != nil {
			return nil, err
		}
		minimum, err := c.readU32("rdata")
		if err != nil {
			return nil, err
		}
		if c.offset() != end {
			return nil, &ParseError{Kind: RDataLengthMismatch, Type: uint16(rrType), Declared: rdlen, Actual: c.offset() - start}
		}
		return SOAData{MName: mname, RName: rname, Serial: serial, Refresh: refresh, Retry: retry, Expire: expire, Minimum: minimum}, nil

	case TypeMX:
		if rdlen < 2 {
			return nil, &ParseError{Kind: BadFixedRData, Type: uint16(rrType), Need: 2, Have: rdlen}
		}
		pref, err := c.readU16("rdata")
		if err != nil {
			return nil, err
		}
		nameStart := c.offset()
		name, wireLen, err := decodeName(c, nameStart)
		if err != nil {
			return nil, err
		}
		c.seek(nameStart + wireLen)
		if 2+wireLen != rdlen {
			return nil, &ParseError{Kind: RDataLengthMismatch, Type: uint16(rrType), Declared: rdlen, Actual: 2 + wireLen}
		}
		return MXData{Preference: pref, Exchange: name}, nil

	case TypeOPT:
		raw, err := c.readN("rdata", rdlen)
		if err != nil {
			return nil, err
		}
		return OPTData{Options: decodeEDNSOptions(raw)}, nil

	case TypeNSEC:
		nameStart := c.offset()
		next, wireLen, err := decodeName(c, nameStart)
		if err != nil {
			return nil, err
		}
		c.seek(nameStart + wireLen)
		if wireLen > rdlen {
			return nil, &ParseError{Kind: RDataLengthMismatch, Type: uint16(rrType), Declared: rdlen, Actual: wireLen}
		}
		bitmap, err := c.readN("rdata", rdlen-wireLen)
		if err != nil {
			return nil, err
		}
		return NSECData{NextDomain: next, TypeBitmap: bitmap}, nil

	case TypeHINFO:
		strs, err := decodeCharStrings(c, rdlen)
		if err != nil {
			return nil, err
		}
		if len(strs) != 2 {
			return nil, &ParseError{Kind: RDataLengthMismatch, Type: uint16(rrType), Declared: rdlen, Actual: c.offset() - start}
		}
		return HINFOData{CPU: strs[0], OS: strs[1]}, nil

	case TypeWKS:
		if rdlen < 5 {
			return nil, &ParseError{Kind: BadFixedRData, Type: uint16(rrType), Need: 5, Have: rdlen}
		}
		addr, err := c.readN("rdata", 4)
		if err != nil {
			return nil, err
		}
		proto, err := c.readU8("rdata")
		if err != nil {
			return nil, err
		}
		bitmap, err := c.readN("rdata", rdlen-5)
		if err != nil {
			return nil, err
		}
		var a [4]byte
		copy(a[:], addr)
		return WKSData{Address: a, Protocol: proto, Bitmap: bitmap}, nil

	default:
		b, err := c.readN("rdata", rdlen)
		if err != nil {
			return nil, err
		}
		return OpaqueData{Bytes: b}, nil
	}
}

// fixedRData validates an exact-size RDATA body (A/AAAA) and reads it.
func fixedRData(c *cursor, rrType Type, rdlen, want int) ([]byte, error) {
	if rdlen != want {
		return nil, &ParseError{Kind: BadFixedRData, Type: uint16(rrType), Need: want, Have: rdlen}
	}
	return c.readN("rdata", rdlen)
}

// decodeNameRData reads a single name filling exactly rdlen bytes
// (PTR/CNAME/NS RDATA), per spec.md section 4.7.
func decodeNameRData(c *cursor, rrType Type, rdlen int) (Name, int, error) {
	start := c.offset()
	name, wireLen, err := decodeName(c, start)
	if err != nil {
		return Name{}, 0, err
	}
	c.seek(start + wireLen)
	if wireLen != rdlen {
		return Name{}, 0, &ParseError{Kind: RDataLengthMismatch, Type: uint16(rrType), Declared: rdlen, Actual: wireLen}
	}
	return name, wireLen, nil
}

// decodeNameField reads one name at the cursor's current position,
// advancing past it, for RDATA shapes (SOA) containing more than one
// name where RDLENGTH is checked once at the end instead of per-name.
func decodeNameField(c *cursor) (Name, error) {
	start := c.offset()
	name, wireLen, err := decodeName(c, start)
	if err != nil {
		return Name{}, err
	}
	c.seek(start + wireLen)
	return name, nil
}

// decodeCharStrings parses a sequence of <length-byte, bytes>
// character-strings that must exactly fill rdlen bytes (RFC 1035
// section 3.3, used by TXT and HINFO). A zero-length RDATA yields a nil
// slice rather than an error (spec.md section 4.7).
func decodeCharStrings(c *cursor, rdlen int) ([][]byte, error) {
	end := c.offset() + rdlen
	var out [][]byte
	for c.offset() < end {
		length, err := c.readU8("rdata")
		if err != nil {
			return nil, err
		}
		if c.offset()+int(length) > end {
			return nil, truncated("rdata", int(length), end-c.offset())
		}
		s, err := c.readN("rdata", int(length))
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// decodeEDNSOptions parses the <code(u16), len(u16), bytes> sequence
// inside an OPT record's RDATA (RFC 6891 section 6.1.2). Truncated
// trailing options end parsing early rather than failing the whole
// record: EDNS option bodies are explicitly out of scope for
// interpretation beyond length accounting (spec.md Non-goals), and a
// malformed option here must not fail a record the surrounding RDLENGTH
// bookkeeping already validated.
func decodeEDNSOptions(rdata []byte) []EDNSOption {
	var opts []EDNSOption
	i := 0
	for i+4 <= len(rdata) {
		code := uint16(rdata[i])<<8 | uint16(rdata[i+1])
		length := int(uint16(rdata[i+2])<<8 | uint16(rdata[i+3]))
		i += 4
		if i+length > len(rdata) {
			break
		}
		data := make([]byte, length)
		copy(data, rdata[i:i+length])
		opts = append(opts, EDNSOption{Code: code, Data: data})
		i += length
	}
	return opts
}
