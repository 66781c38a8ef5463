package store

import (
	"github.com/OpenZeppelin/compact-security-detectors-sdk/ast"
	"github.com/minio/highwayhash"
)

var fingerprintKey = []byte("compact-scanner-fingerprint-key0")

// Fingerprint returns a stable hash of data, used to de-duplicate findings
// that carry the same underlying source text across repeated scans.
func Fingerprint(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// NodeFingerprint fingerprints node's own source text, letting a detector
// recognise the same finding across two scans even after ids have shifted.
func NodeFingerprint(node ast.Node) (uint64, error) {
	return Fingerprint([]byte(node.Location().SourceText))
}
