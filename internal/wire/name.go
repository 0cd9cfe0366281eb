package wire

import "strings"

// maxVisitedPointers bounds the compression-pointer visited set. Strict
// backward-pointer-only resolution already guarantees termination (each
// hop strictly decreases the offset), so this is a defensive cap rather
// than the sole termination guarantee: no realistic name needs anywhere
// near 128 indirections.
const maxVisitedPointers = 128

// maxNameLength is the maximum resolved name length in octets (sum of
// label lengths plus one length-prefix byte per label, plus the root
// byte), per RFC 1035 section 3.1.
const maxNameLength = 255

// maxLabelLength is the maximum length of a single label's octets.
const maxLabelLength = 63

// Label is one component of a decoded Name: either up to 63 bytes of
// opaque octets, or the root (zero-length) terminator. Offset is where
// the label begins in the datagram, so a later record's name can be
// recognized as a compression-pointer referent of this one.
type Label struct {
	Offset int
	Data   []byte // nil for the root label
}

// IsRoot reports whether l is the zero-length terminating label.
func (l Label) IsRoot() bool { return len(l.Data) == 0 }

// Name is a fully resolved domain name: the sequence of labels reached
// by following any compression pointers, ending in the root label.
type Name struct {
	Labels []Label
}

// String renders the name as a dot-separated, backslash-escaped string
// (RFC 1035 section 5.1 presentation format). Labels are opaque byte
// strings; this is a display convenience, not a validation step, and
// never rejects non-printable or non-UTF-8 label bytes.
func (n Name) String() string {
	if len(n.Labels) <= 1 {
		return "."
	}
	var b strings.Builder
	for _, l := range n.Labels {
		if l.IsRoot() {
			break
		}
		escapeLabel(&b, l.Data)
		b.WriteByte('.')
	}
	return b.String()
}

func escapeLabel(b *strings.Builder, data []byte) {
	for _, c := range data {
		switch {
		case c == '.' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c < 0x20 || c >= 0x7F:
			b.WriteByte('\\')
			b.WriteString(decimalEscape(c))
		default:
			b.WriteByte(c)
		}
	}
}

func decimalEscape(c byte) string {
	const digits = "0123456789"
	return string([]byte{digits[c/100], digits[(c/10)%10], digits[c%10]})
}

// decodeName resolves a (possibly compressed) name starting at the
// absolute offset start, per spec.md section 4.3. It returns the
// resolved labels and the number of bytes the *original* occurrence of
// the name consumes on the wire — which is not len(resolved name), since
// a 2-byte pointer can expand into an arbitrarily long resolved path.
func decodeName(c *cursor, start int) (Name, int, error) {
	if start < 0 || start >= c.len() {
		if start == c.len() {
			return Name{}, 0, truncated("name", 1, 0)
		}
		return Name{}, 0, truncated("name", 1, c.len()-start)
	}

	var (
		labels       []Label
		visited      = make(map[int]struct{})
		cur          = start
		wireLen      = -1 // fixed once the first pointer (or the root, if no pointer) is seen
		resolvedSize = 0
	)

	for {
		b, err := c.peekU8(cur, "name")
		if err != nil {
			return Name{}, 0, err
		}

		switch b & 0xC0 {
		case 0x00: // length label (including the zero-length root)
			length := int(b)
			if length > maxLabelLength {
				return Name{}, 0, &ParseError{Kind: LabelTooLong, Offset: cur, Length: length}
			}
			if length == 0 {
				labels = append(labels, Label{Offset: cur, Data: nil})
				if wireLen == -1 {
					wireLen = cur + 1 - start
				}
				return Name{Labels: labels}, wireLen, nil
			}
			if cur+1+length > c.len() {
				return Name{}, 0, truncated("name", length, c.len()-(cur+1))
			}
			data := make([]byte, length)
			copy(data, c.data[cur+1:cur+1+length])
			labels = append(labels, Label{Offset: cur, Data: data})
			resolvedSize += length + 1
			if resolvedSize+1 > maxNameLength { // +1 for the root byte
				return Name{}, 0, &ParseError{Kind: NameTooLong, Length: resolvedSize + 1}
			}
			cur = cur + 1 + length

		case 0xC0: // compression pointer
			second, err := c.peekU8(cur+1, "name")
			if err != nil {
				return Name{}, 0, err
			}
			target := (int(b&0x3F) << 8) | int(second)

			if wireLen == -1 {
				wireLen = cur + 2 - start
			}
			if target >= cur {
				return Name{}, 0, &ParseError{Kind: BadPointer, From: cur, To: target}
			}
			if _, seen := visited[target]; seen {
				return Name{}, 0, &ParseError{Kind: PointerLoop, Offset: target}
			}
			if len(visited) >= maxVisitedPointers {
				return Name{}, 0, &ParseError{Kind: PointerLoop, Offset: target}
			}
			visited[target] = struct{}{}
			cur = target

		default: // 0x40 or 0x80: reserved label types (RFC 1035/RFC 2671)
			return Name{}, 0, &ParseError{Kind: ReservedLabelType, Offset: cur, Tag: b}
		}
	}
}
