// Package wire implements the binary encoding used by CIP explicit messaging.
//
// CIP encodes every multi-byte quantity little-endian. This package covers
// the three places where bytes become typed values and back:
//
//   - Attribute values, driven by a DataType tag
//   - Logical segment paths naming a class, instance and attribute
//   - Message router request and response framing
//
// # Attribute Data Types
//
// Encode writes the value referenced by a Go pointer into a bounded Writer.
// The accepted pointer types per tag are listed on Encode. Tags that have no
// representation yet (date and time variants, multi-language strings,
// engineering units, member lists) encode zero bytes and are not an error.
//
// Decode is narrower than Encode: only integers, floating point values,
// STRING and SHORT_STRING can be read back. Every length taken from the
// input is checked against the available bytes; an overrun is rejected
// with ErrShortBuffer and the target value is left untouched.
//
// # Paths
//
// A path is a sequence of 8-bit or 16-bit logical segments:
//
//	0x20 cc          class, 8-bit
//	0x21 00 cc cc    class, 16-bit
//	0x24 ii          instance, 8-bit
//	0x25 00 ii ii    instance, 16-bit
//	0x30 aa          attribute, 8-bit
//	0x31 00 aa aa    attribute, 16-bit
//
// The attribute form (EPATH data type) carries a UINT word count, the
// request form carried in message router requests a USINT word count.
// Segment bytes with the top three bits set are reserved and rejected.
//
// # Message Router Framing
//
// A request is the service code, the request path and the service data.
// A response is the reply service (request service | 0x80), a reserved
// byte, the general status, the additional status size in words, the
// additional status words and the reply data.
package wire
