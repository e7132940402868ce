package util

import (
	"crypto/sha256"
	"fmt"

	xdr "github.com/davecgh/go-xdr/xdr2"
)

type LabeledVector struct {
	Vec   []float64
	Label int32
}

// HashLabeledVectors hashes the XDR encoding of items, so equal content in
// equal order always gives the same sum.
func HashLabeledVectors(items []LabeledVector) ([32]byte, error) {
	buffer := GetBytesBuffer()
	defer PutBytesBuffer(buffer)
	if _, err := xdr.Marshal(buffer, items); err != nil {
		return [32]byte{}, fmt.Errorf("xdr marshal: %w", err)
	}
	return sha256.Sum256(buffer.Bytes()), nil
}
