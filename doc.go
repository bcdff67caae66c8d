// Package ssds implements SSDS, a sequential self-describing binary stream
// format.
//
// A stream is a sequence of records. Each record starts with a varint tag
// (id<<3 | wire type). Data records carry a value, start and end records
// delimit nested groups, and schema records declare the groups and items the
// data records refer to. Declarations are written lazily, right before the
// first record that needs them, so a Reader with no prior knowledge can
// rebuild names, types and nesting from the bytes alone.
//
// Writer and Reader are single-pass and forward-only. Neither is safe for
// concurrent use, and neither closes the transport it was given.
package ssds
