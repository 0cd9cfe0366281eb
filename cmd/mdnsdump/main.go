// Command mdnsdump decodes a single captured mDNS datagram and prints its
// structured summary, for offline debugging of packets captured outside
// the running bridge (e.g. with tcpdump -w and a small extraction
// script). The datagram is read from a file, or from stdin if no file is
// given, encoded as either hex or base64.
package main

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/mdnsbridge/mdnsbridge/internal/summary"
	"github.com/mdnsbridge/mdnsbridge/internal/wire"
)

func main() {
	var (
		encoding = flag.String("encoding", "hex", "Datagram encoding: hex or base64")
		peer     = flag.String("peer", "", "Source peer address to attribute the datagram to")
		path     = flag.String("file", "", "Path to the encoded datagram (reads stdin if empty)")
	)
	flag.Parse()

	if err := run(*encoding, *peer, *path, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "mdnsdump: %v\n", err)
		os.Exit(1)
	}
}

func run(encoding, peer, path string, stdin io.Reader, stdout io.Writer) error {
	raw, err := readInput(path, stdin)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	datagram, err := decodeDatagram(encoding, raw)
	if err != nil {
		return fmt.Errorf("decode %s input: %w", encoding, err)
	}

	msg, err := wire.Parse(datagram)
	if err != nil {
		return fmt.Errorf("parse datagram: %w", err)
	}

	var peerAddr netip.Addr
	if peer != "" {
		peerAddr, err = netip.ParseAddr(peer)
		if err != nil {
			return fmt.Errorf("parse -peer: %w", err)
		}
	}

	s := summary.From(msg, peerAddr, time.Now())

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == "" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func decodeDatagram(encoding string, raw []byte) ([]byte, error) {
	text := strings.TrimSpace(string(raw))
	switch strings.ToLower(encoding) {
	case "hex":
		text = strings.Join(strings.Fields(text), "")
		return hex.DecodeString(text)
	case "base64", "b64":
		return base64.StdEncoding.DecodeString(text)
	default:
		return nil, fmt.Errorf("unknown encoding %q: want hex or base64", encoding)
	}
}
