package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// ContentKey identifies raw input bytes for memoisation.
type ContentKey string

// NewContentKey hashes raw bytes with SHA-256.
func NewContentKey(data []byte) ContentKey {
	sum := sha256.Sum256(data)
	return ContentKey(hex.EncodeToString(sum[:]))
}

// Short returns the first 12 hex digits, for logs.
func (k ContentKey) Short() string {
	if len(k) > 12 {
		return string(k[:12])
	}
	return string(k)
}

// InterfaceKey identifies one interface detection: the structure bytes
// and the distance threshold.
type InterfaceKey struct {
	Content   ContentKey
	Threshold float64
}

// String renders the key as "<hash>@<threshold>".
func (k InterfaceKey) String() string {
	return string(k.Content) + "@" + strconv.FormatFloat(k.Threshold, 'g', -1, 64)
}

// StructureInput is a structure file as received from the user.
type StructureInput struct {
	// FileName is used only for display.
	FileName string

	Data []byte
}

// Key returns the content key of the data.
func (in StructureInput) Key() ContentKey {
	return NewContentKey(in.Data)
}

// InputKind names a session input file.
type InputKind string

// Session inputs.
const (
	InputStructure InputKind = "structure"
	InputScores    InputKind = "scores"
)

// SessionEvent reports a reload of a watched input file.
// Err is set when the new content could not be loaded; the previous
// content is kept.
type SessionEvent struct {
	Kind InputKind
	Path string
	Err  error
}
