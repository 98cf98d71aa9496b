package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data. The pipeline keys entries by the
// hash of the raw input bytes.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey digests the input hash and the JSON form of opts into
// "prefix:<sha256>". Struct fields encode in declaration order, so equal
// options always produce equal keys.
func hashKey(prefix, inputHash string, opts any) string {
	h := sha256.New()
	h.Write([]byte(inputHash))
	h.Write([]byte{0})
	_ = json.NewEncoder(h).Encode(opts)
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}
