package utils

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
)

// Fingerprint hashes the JSON encoding of v, so two uploads with the same
// rows share a fingerprint.
func Fingerprint(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	h := fnv.New64a()
	_, _ = h.Write(b)
	return fmt.Sprintf("%016x", h.Sum64()), nil
}
