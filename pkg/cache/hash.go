package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/causalid/pkg/smcm"
)

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ModelHash identifies a model by its edge codes and labels. Two files that
// decode to the same graph share a hash regardless of their format.
func ModelHash(g *smcm.Graph, labels []string) string {
	data, _ := json.Marshal(struct {
		Matrix [][]int  `json:"matrix"`
		Labels []string `json:"labels"`
	}{g.Matrix(), labels})
	return Hash(data)
}
