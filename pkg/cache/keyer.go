package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// LayoutKeyOpts are the options that change a computed layout.
type LayoutKeyOpts struct {
	XLabel      string     `json:"x_label"`
	YLabel      string     `json:"y_label"`
	Title       string     `json:"title"`
	Width       float64    `json:"width"`
	Height      float64    `json:"height"`
	Bins        int        `json:"bins"`
	Margin      float64    `json:"margin"`
	Correlation bool       `json:"correlation"`
	Palette     [4]string  `json:"palette"`
	Ratios      [4]float64 `json:"ratios"`
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	DPI    int    `json:"dpi"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey returns the key of the layout computed from a dataset.
	LayoutKey(datasetHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of an artifact rendered from a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "layout:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey hashes the dataset hash together with the layout options.
func (DefaultKeyer) LayoutKey(datasetHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", datasetHash, opts)
}

// ArtifactKey hashes the layout hash together with the artifact options.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = DefaultKeyer{}

// hashKey returns "prefix:<sha256 of the JSON-encoded parts>".
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
