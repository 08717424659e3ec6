package cbor

// Link is the capability a caller's content-identifier type must provide so
// Encode can serialize it without this package depending on any concrete CID
// implementation. The source this spec is derived from dispatches on a
// caller-supplied "type tag" plus a duck-typed accessor; in Go a single
// interface does the same job without needing the tag.
type Link interface {
	// LinkBytes returns the raw CID bytes: the leading multicodec/multihash
	// bytes through the digest, but not the leading 0x00 multibase prefix
	// byte that precedes them on the wire.
	LinkBytes() []byte
}

// LinkFactory constructs a Link from the raw CID bytes read off the wire —
// the tag-42 byte string's content with the leading 0x00 multibase prefix
// already stripped. Decode calls it once per tag-42 item; it is unused when
// atjson mode is enabled, since atjson represents links as {"$link": ...}
// text rather than constructing a caller Link.
type LinkFactory func(raw []byte) (Link, error)
