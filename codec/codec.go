// Package codec defines value serialization for feedcache. Codecs are used by
// byte-backed tables (table/bigcache, table/ristretto) and by remote sources
// (source/redis) to move V values across a []byte boundary.
package codec

// Codec encodes/decodes values V to []byte.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
