package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Keyer derives cache keys for each pipeline stage.
type Keyer interface {
	// LayoutKey identifies the laid-out and settled form of a document.
	LayoutKey(docHash string, opts LayoutKeyOpts) string

	// ArtifactKey identifies one rendered output of a laid-out document.
	ArtifactKey(stateHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the layout inputs that change the result.
type LayoutKeyOpts struct {
	PaddingW     float64 `json:"padding_w"`
	PaddingH     float64 `json:"padding_h"`
	CheckBuffer  float64 `json:"check_buffer"`
	AdjustBuffer float64 `json:"adjust_buffer"`
	LabelBuffer  float64 `json:"label_buffer"`
}

// ArtifactKeyOpts are the render inputs that change the result.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Scale    float64 `json:"scale,omitempty"`
	Margin   int     `json:"margin,omitempty"`
	Anchors  bool    `json:"anchors,omitempty"`
	Segments int     `json:"segments,omitempty"`
}

// DefaultKeyer hashes the stage name, input hash and options together.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:<sha256>".
func (DefaultKeyer) LayoutKey(docHash string, opts LayoutKeyOpts) string {
	return stageKey("layout", docHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(stateHash string, opts ArtifactKeyOpts) string {
	return stageKey("artifact", stateHash, opts)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// stageKey hashes input and the JSON form of opts under a stage prefix.
// Key option structs hold only plain fields, so encoding cannot fail.
func stageKey(stage, input string, opts any) string {
	encoded, _ := json.Marshal(opts)
	h := sha256.New()
	h.Write([]byte(input))
	h.Write([]byte{0})
	h.Write(encoded)
	return stage + ":" + hex.EncodeToString(h.Sum(nil))
}
