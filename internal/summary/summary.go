// Package summary projects a parsed wire.Message down to the flat,
// publisher-facing shape described in spec.md section 6: a structured
// record of what a datagram asked for and what it answered, with every
// RDATA variant reduced to either an address or an opaque marker. It
// never mutates a wire.Message and never re-derives anything decodeRData
// already computed.
package summary

import (
	"net/netip"
	"time"

	"github.com/mdnsbridge/mdnsbridge/internal/wire"
)

// Question is the publisher-facing projection of a wire.Question.
type Question struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Class   string `json:"class"`
	Unicast bool   `json:"unicast,omitempty"`
}

// Record is the publisher-facing projection of a wire.Record. Exactly one
// of Address or Opaque is populated, mirroring spec.md section 6's
// "address-or-opaque-marker" contract; records whose RDATA carries no
// single address (TXT, SRV, SOA, ...) are surfaced as opaque with their
// byte length only, never the raw bytes — the publisher's concern is
// "what showed up", not forwarding payloads verbatim.
type Record struct {
	Name       string `json:"name"`
	Type       string `json:"type"`
	Class      string `json:"class"`
	TTL        uint32 `json:"ttl"`
	CacheFlush bool   `json:"cache_flush,omitempty"`

	Address    string `json:"address,omitempty"`
	Opaque     bool   `json:"opaque,omitempty"`
	RDataBytes int    `json:"rdata_bytes,omitempty"`
}

// Summary is the fully flattened, JSON-ready view of one decoded
// datagram: the publisher's only input.
type Summary struct {
	ID       uint16     `json:"id"`
	QR       bool       `json:"qr"`
	Opcode   string     `json:"opcode"`
	RCode    string     `json:"rcode"`
	Peer     string     `json:"peer,omitempty"`
	Received time.Time  `json:"received"`

	Questions  []Question `json:"questions,omitempty"`
	Answers    []Record   `json:"answers,omitempty"`
	Authority  []Record   `json:"authority,omitempty"`
	Additional []Record   `json:"additional,omitempty"`
}

// From builds a Summary from a decoded message and the peer it arrived
// from. receivedAt is passed in rather than taken via time.Now so the
// projection stays a pure function of its inputs, same as wire.Parse.
func From(msg wire.Message, peer netip.Addr, receivedAt time.Time) Summary {
	s := Summary{
		ID:       msg.Header.ID,
		QR:       msg.Header.QR,
		Opcode:   opcodeName(msg.Header.Opcode),
		RCode:    rcodeName(msg.Header.RCode),
		Received: receivedAt,
	}
	if peer.IsValid() {
		s.Peer = peer.String()
	}

	if len(msg.Questions) > 0 {
		s.Questions = make([]Question, len(msg.Questions))
		for i, q := range msg.Questions {
			s.Questions[i] = Question{
				Name:    q.Name.String(),
				Type:    q.Type.String(),
				Class:   q.Class.String(),
				Unicast: q.Unicast,
			}
		}
	}

	s.Answers = projectRecords(msg.Answers)
	s.Authority = projectRecords(msg.Authority)
	s.Additional = projectRecords(msg.Additional)

	return s
}

func projectRecords(rrs []wire.Record) []Record {
	if len(rrs) == 0 {
		return nil
	}
	out := make([]Record, len(rrs))
	for i, rr := range rrs {
		out[i] = projectRecord(rr)
	}
	return out
}

func projectRecord(rr wire.Record) Record {
	rec := Record{
		Name:       rr.Name.String(),
		Type:       rr.Type.String(),
		Class:      rr.Class.String(),
		TTL:        rr.TTL,
		CacheFlush: rr.CacheFlush,
	}

	switch rd := rr.RData.(type) {
	case wire.AData:
		rec.Address = rd.Addr.String()
	case wire.AAAAData:
		rec.Address = rd.Addr.String()
	default:
		rec.Opaque = true
		rec.RDataBytes = int(rr.RDLength)
	}

	return rec
}

func opcodeName(op wire.Opcode) string {
	switch op {
	case wire.OpcodeQuery:
		return "QUERY"
	case wire.OpcodeIQuery:
		return "IQUERY"
	case wire.OpcodeStatus:
		return "STATUS"
	default:
		return "UNKNOWN"
	}
}

func rcodeName(rc wire.RCode) string {
	switch rc {
	case wire.RCodeNoError:
		return "NOERROR"
	case wire.RCodeFormatError:
		return "FORMERR"
	case wire.RCodeServerFailure:
		return "SERVFAIL"
	case wire.RCodeNameError:
		return "NXDOMAIN"
	case wire.RCodeNotImplemented:
		return "NOTIMP"
	case wire.RCodeRefused:
		return "REFUSED"
	default:
		return "UNKNOWN"
	}
}
