package wire

// Question is one entry of the question section (RFC 1035 section 4.1.2),
// extended with the mDNS QU bit (RFC 6762 section 5.4).
type Question struct {
	Name  Name
	Type  Type
	Class Class

	// Unicast is the mDNS QU bit: true requests a unicast response,
	// false (QM) allows a multicast one. For classic unicast DNS, where
	// the high bit of the class field has no such meaning, the bit is
	// still surfaced here as-is rather than discarded.
	Unicast bool
}

func decodeQuestion(c *cursor) (Question, error) {
	start := c.offset()
	name, wireLen, err := decodeName(c, start)
	if err != nil {
		return Question{}, err
	}
	c.seek(start + wireLen)

	rawType, err := c.readU16("question")
	if err != nil {
		return Question{}, err
	}
	rawClass, err := c.readU16("question")
	if err != nil {
		return Question{}, err
	}
	class, unicast := splitClass(rawClass)

	return Question{
		Name:    name,
		Type:    Type(rawType),
		Class:   class,
		Unicast: unicast,
	}, nil
}
