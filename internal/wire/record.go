package wire

// Record is a single resource record: a name, a TYPE/CLASS pair, a TTL,
// and a TYPE-discriminated RDATA (RFC 1035 section 4.1.3, extended with
// the mDNS cache-flush bit of RFC 6762 section 10.2).
type Record struct {
	Name  Name
	Type  Type
	Class Class

	// CacheFlush is the high bit of the class field on answer/authority/
	// additional records: it instructs mDNS peers to replace any cached
	// records with the same (name, type, class). Preserved, never
	// stripped (spec.md section 3 leaves the choice to the implementer;
	// this implementation keeps it because the bridge's Summary
	// projection surfaces it to the publisher).
	CacheFlush bool

	TTL      uint32
	RDLength uint16
	RData    RData
}

func decodeRecord(c *cursor, section string) (Record, error) {
	nameStart := c.offset()
	name, wireLen, err := decodeName(c, nameStart)
	if err != nil {
		return Record{}, err
	}
	c.seek(nameStart + wireLen)

	rawType, err := c.readU16(section)
	if err != nil {
		return Record{}, err
	}
	rawClass, err := c.readU16(section)
	if err != nil {
		return Record{}, err
	}
	ttl, err := c.readU32(section)
	if err != nil {
		return Record{}, err
	}
	rdlength, err := c.readU16(section)
	if err != nil {
		return Record{}, err
	}

	rrType := Type(rawType)
	class, cacheFlush := splitClass(rawClass)

	rdataStart := c.offset()
	if rdataStart+int(rdlength) > c.len() {
		return Record{}, truncated(section, int(rdlength), c.len()-rdataStart)
	}

	rdata, err := decodeRData(c, rrType, rawClass, ttl, int(rdlength))
	if err != nil {
		return Record{}, err
	}
	if got := c.offset() - rdataStart; got != int(rdlength) {
		return Record{}, &ParseError{Kind: RDataLengthMismatch, Type: rawType, Declared: int(rdlength), Actual: got}
	}

	return Record{
		Name:       name,
		Type:       rrType,
		Class:      class,
		CacheFlush: cacheFlush,
		TTL:        ttl,
		RDLength:   rdlength,
		RData:      rdata,
	}, nil
}
