// Package ident derives stable, content-addressed identifiers for graph
// nodes. Two scans of the same tree always assign the same ID to the same
// node, so exported graphs can be diffed or joined across runs.
package ident

import (
	"encoding/hex"

	"lukechampine.com/blake3"
)

// NodeID computes the identifier for a node as blake3(kind + "\n" + name).
func NodeID(kind, name string) []byte {
	h := blake3.Sum256([]byte(kind + "\n" + name))
	return h[:]
}

// NodeIDHex returns the node identifier as a hex string.
func NodeIDHex(kind, name string) string {
	return hex.EncodeToString(NodeID(kind, name))
}

// EdgeID computes the identifier for an edge from its endpoint IDs and type.
func EdgeID(fromID, toID []byte, edgeType string) []byte {
	buf := make([]byte, 0, len(fromID)+len(toID)+len(edgeType)+2)
	buf = append(buf, fromID...)
	buf = append(buf, '\n')
	buf = append(buf, toID...)
	buf = append(buf, '\n')
	buf = append(buf, edgeType...)
	h := blake3.Sum256(buf)
	return h[:]
}
