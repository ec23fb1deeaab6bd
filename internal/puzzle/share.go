// internal/puzzle/share.go
//
// Share codes: a whole puzzle packed into one URL-safe token, so a round
// can travel in a link with no server round trip. Layout is a fixed
// prefix, then base64url over DEFLATE over compact JSON.

package puzzle

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/flate"
)

// sharePrefix versions the code layout; bump it if the payload changes
// incompatibly.
const sharePrefix = "msq1."

// maxSharePayload caps the decompressed size. Real puzzles are a few
// hundred bytes; anything near the cap is hostile input.
const maxSharePayload = 1 << 20

// EncodeShare packs a validated puzzle into a share code.
func EncodeShare(p *Puzzle) (string, error) {
	if err := p.Validate(); err != nil {
		return "", err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("puzzle: marshal share payload: %w", err)
	}

	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", fmt.Errorf("puzzle: init compressor: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return "", fmt.Errorf("puzzle: compress share payload: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("puzzle: flush compressor: %w", err)
	}

	return sharePrefix + base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeShare unpacks and validates a share code. The embedded puzzle is
// re-proved like any other untrusted input; a tampered grid or clue list
// comes back as an error, never as a playable round.
func DecodeShare(code string) (*Puzzle, error) {
	body, ok := strings.CutPrefix(strings.TrimSpace(code), sharePrefix)
	if !ok {
		return nil, fmt.Errorf("puzzle: not a share code")
	}
	raw, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("puzzle: decode share code: %w", err)
	}

	r := flate.NewReader(bytes.NewReader(raw))
	defer r.Close()
	data, err := io.ReadAll(io.LimitReader(r, maxSharePayload))
	if err != nil {
		return nil, fmt.Errorf("puzzle: decompress share code: %w", err)
	}

	var p Puzzle
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("puzzle: parse share payload: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
