// Package canonical produces canonical JSON text for element values.
//
// The encoding follows RFC 8785 for the value types it accepts, so two values
// are structurally equal exactly when their canonical text is byte-equal:
//   - Strings are NFC normalized, with no HTML escaping
//   - U+2028 and U+2029 are emitted literally
//   - Object keys are ordered by UTF-16 code units
//   - Output is compact (no insignificant whitespace)
//
// Floats and null are rejected; numbers must be integers that fit in int64.
package canonical
