package calibrate

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// ProbeToken generates one synthetic, collision-resistant path segment of
// the form "__fuzzhammer_404_<hex>", unlikely to exist on any real target.
func ProbeToken() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("calibrate: generate probe token: %w", err)
	}
	return "__fuzzhammer_404_" + hex.EncodeToString(buf), nil
}
