// Package wire frames (key, payload) update envelopes for transport over
// message channels. Framing is strict: bad magic, bad version, bad lengths
// and trailing bytes are all rejected, so a foreign message on a shared
// channel surfaces as one failed element instead of a silently wrong update.
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	version    byte = 1
	kindUpdate byte = 1

	maxKeyLen = 0xFFFF
)

var (
	ErrCorrupt = errors.New("feedcache: corrupt update envelope")
	ErrBadKey  = errors.New("feedcache: invalid key length in envelope")

	magic4 = [...]byte{'F', 'E', 'E', 'D'}
)

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Update: magic(4) | ver(1) | kind(1=update) | klen(u16 be) | key(klen) | vlen(u32 be) | payload(vlen)
func EncodeUpdate(key string, payload []byte) ([]byte, error) {
	if l := len(key); l == 0 || l > maxKeyLen {
		return nil, ErrBadKey
	}

	var buf bytes.Buffer
	buf.Grow(4 + 1 + 1 + 2 + len(key) + 4 + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(version)
	buf.WriteByte(kindUpdate)

	var u2 [2]byte
	var u4 [4]byte

	binary.BigEndian.PutUint16(u2[:], uint16(len(key)))
	buf.Write(u2[:])
	buf.WriteString(key)

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])
	buf.Write(payload)

	return buf.Bytes(), nil
}

func DecodeUpdate(b []byte) (key string, payload []byte, err error) {
	const hdr = 4 + 1 + 1 + 2
	if len(b) < hdr || !hasMagic(b) || b[4] != version || b[5] != kindUpdate {
		return "", nil, ErrCorrupt
	}

	off := 6

	klen := int(binary.BigEndian.Uint16(b[off : off+2]))
	off += 2
	if klen == 0 || klen > len(b)-off {
		return "", nil, ErrCorrupt
	}
	key = string(b[off : off+klen])
	off += klen

	if off+4 > len(b) {
		return "", nil, ErrCorrupt
	}
	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen > len(b)-off {
		return "", nil, ErrCorrupt
	}
	payload = b[off : off+vlen]
	off += vlen

	// strict framing: no trailing bytes
	if off != len(b) {
		return "", nil, ErrCorrupt
	}
	return key, payload, nil
}
