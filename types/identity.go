package types

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/zeebo/xxh3"
)

// identityCodecVersion is the current wire format version tag.
const identityCodecVersion byte = 1

// Wire format sizes for the fixed-width identity fields.
const (
	identityHeaderLen = 1 + 2             // version tag + host length
	identityFixedLen  = identityHeaderLen + 4 + 8 // + port + start timestamp
)

// Identity codec errors.
var (
	// ErrIdentityTruncated is returned when the encoded bytes are shorter
	// than the declared layout.
	ErrIdentityTruncated = errors.New("identity bytes truncated")

	// ErrIdentityVersion is returned when the version tag is not recognized.
	ErrIdentityVersion = errors.New("unsupported identity version")
)

// Identity uniquely describes one candidate process.
//
// Host and Port identify the endpoint a process serves on; StartedAt is the
// process start timestamp in unix milliseconds. Two incarnations of the same
// process share Host and Port but never StartedAt, which is how a leftover
// registration from a previous run is told apart from a live one.
type Identity struct {
	// Host is the hostname or address of the candidate.
	Host string

	// Port is the service port of the candidate.
	Port int

	// StartedAt is the process start time in unix milliseconds.
	StartedAt int64
}

// SameEndpoint reports whether both identities share host and port,
// ignoring the start timestamp.
//
// Parameters:
//   - other: Identity to compare against
//
// Returns:
//   - bool: true if host and port match
func (id Identity) SameEndpoint(other Identity) bool {
	return id.Host == other.Host && id.Port == other.Port
}

// Equal reports whether both identities match on all three fields.
//
// Parameters:
//   - other: Identity to compare against
//
// Returns:
//   - bool: true if host, port and start timestamp all match
func (id Identity) Equal(other Identity) bool {
	return id.SameEndpoint(other) && id.StartedAt == other.StartedAt
}

// String returns a human-readable "host:port@startedAt" form for logs.
func (id Identity) String() string {
	return fmt.Sprintf("%s:%d@%d", id.Host, id.Port, id.StartedAt)
}

// Fingerprint returns a stable 64-bit hash of the encoded identity.
//
// Useful as a compact log field or metric label when the full identity
// string is too verbose.
//
// Returns:
//   - uint64: xxh3 hash of the encoded identity bytes
func (id Identity) Fingerprint() uint64 {
	return xxh3.Hash(id.Encode())
}

// Encode serializes the identity as versioned bytes.
//
// Layout: 1-byte version tag, 2-byte big-endian host length, host bytes,
// 4-byte big-endian port, 8-byte big-endian start timestamp. Fields appended
// after the timestamp in future versions are ignored by older decoders, so
// the format stays forward-parseable.
//
// Returns:
//   - []byte: Encoded identity
func (id Identity) Encode() []byte {
	host := []byte(id.Host)
	buf := make([]byte, 0, identityFixedLen+len(host))

	buf = append(buf, identityCodecVersion)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(host))) //nolint:gosec // host length is validated below 64KiB by construction
	buf = append(buf, host...)
	buf = binary.BigEndian.AppendUint32(buf, uint32(id.Port)) //nolint:gosec // port is a 16-bit value stored in a fixed 32-bit slot
	buf = binary.BigEndian.AppendUint64(buf, uint64(id.StartedAt)) //nolint:gosec // timestamp round-trips through two's complement

	return buf
}

// DecodeIdentity parses versioned identity bytes produced by Encode.
//
// Trailing bytes beyond the known fields are ignored, so values written by
// newer versions that append fields still decode.
//
// Parameters:
//   - data: Encoded identity bytes
//
// Returns:
//   - Identity: Decoded identity
//   - error: ErrIdentityTruncated or ErrIdentityVersion on malformed input
func DecodeIdentity(data []byte) (Identity, error) {
	if len(data) < identityHeaderLen {
		return Identity{}, fmt.Errorf("%w: %d bytes", ErrIdentityTruncated, len(data))
	}

	if data[0] != identityCodecVersion {
		return Identity{}, fmt.Errorf("%w: %d", ErrIdentityVersion, data[0])
	}

	hostLen := int(binary.BigEndian.Uint16(data[1:3]))
	if len(data) < identityFixedLen+hostLen {
		return Identity{}, fmt.Errorf("%w: declared host length %d", ErrIdentityTruncated, hostLen)
	}

	host := string(data[identityHeaderLen : identityHeaderLen+hostLen])
	rest := data[identityHeaderLen+hostLen:]

	port := binary.BigEndian.Uint32(rest[0:4])
	startedAt := int64(binary.BigEndian.Uint64(rest[4:12])) //nolint:gosec // reverses the Encode conversion

	return Identity{
		Host:      host,
		Port:      int(port),
		StartedAt: startedAt,
	}, nil
}
