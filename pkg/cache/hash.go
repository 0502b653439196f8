package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/matzehuels/trustpane/pkg/gfx"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// RenderKeyOpts lists every input that changes a rendered image.
type RenderKeyOpts struct {
	Kind      string      `json:"kind"`
	BaseTrust int         `json:"base_trust"`
	Heights   []int       `json:"heights,omitempty"`
	Metrics   gfx.Metrics `json:"metrics"`
	Status    int         `json:"status_height"`
	Light     string      `json:"light"`
	Dark      string      `json:"dark"`
	Labels    bool        `json:"labels"`
	FontFace  bool        `json:"font_face"`
}

// RenderKey derives the cache key for a rendered layout.
func RenderKey(opts RenderKeyOpts) string {
	data, _ := json.Marshal(opts)
	return "render:" + Hash(data)
}
