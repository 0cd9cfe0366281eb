package wire

import "encoding/binary"

// The helpers below build raw wire bytes for test fixtures. The wire
// package itself never encodes (spec.md scopes emission out entirely),
// so these exist only to construct datagrams for decode tests.

func u16(v uint16) []byte {
	b := make([]byte, 2)
	binary.BigEndian.PutUint16(b, v)
	return b
}

func u32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

// rawHeader builds a 12-byte header.
func rawHeader(id, flags, qd, an, ns, ar uint16) []byte {
	buf := make([]byte, 0, 12)
	buf = append(buf, u16(id)...)
	buf = append(buf, u16(flags)...)
	buf = append(buf, u16(qd)...)
	buf = append(buf, u16(an)...)
	buf = append(buf, u16(ns)...)
	buf = append(buf, u16(ar)...)
	return buf
}

// rawName encodes labels as uncompressed length-prefixed strings
// terminated by the root label.
func rawName(labels ...string) []byte {
	var buf []byte
	for _, l := range labels {
		buf = append(buf, byte(len(l)))
		buf = append(buf, []byte(l)...)
	}
	buf = append(buf, 0)
	return buf
}

// rawPointer encodes a 2-byte compression pointer to offset off.
func rawPointer(off int) []byte {
	v := uint16(0xC000) | uint16(off&0x3FFF)
	return u16(v)
}

// rawCharStrings encodes a sequence of length-prefixed character
// strings (used by TXT/HINFO RDATA).
func rawCharStrings(strs ...string) []byte {
	var buf []byte
	for _, s := range strs {
		buf = append(buf, byte(len(s)))
		buf = append(buf, []byte(s)...)
	}
	return buf
}

// rawQuestion encodes a full question section entry.
func rawQuestion(name []byte, qtype, qclass uint16) []byte {
	buf := append([]byte{}, name...)
	buf = append(buf, u16(qtype)...)
	buf = append(buf, u16(qclass)...)
	return buf
}

// rawRecord encodes a full resource record with the given RDATA bytes.
func rawRecord(name []byte, rrType, rrClass uint16, ttl uint32, rdata []byte) []byte {
	buf := append([]byte{}, name...)
	buf = append(buf, u16(rrType)...)
	buf = append(buf, u16(rrClass)...)
	buf = append(buf, u32(ttl)...)
	buf = append(buf, u16(uint16(len(rdata)))...)
	buf = append(buf, rdata...)
	return buf
}
