package store

import (
	"encoding/json"
	"fmt"

	"github.com/loopkit/loopc/internal/ir"
)

// Record is one registry row: a single compiled program. The body is
// the program's canonical JSON encoding; KernelHash identifies the
// source kernel so every compilation of the same kernel can be found
// regardless of the minted program name.
type Record struct {
	Seq        int64
	ID         string
	Name       string
	KernelHash string
	Params     []string
	Body       []byte
}

// marshalParams converts a parameter list to canonical JSON TEXT for
// storage. Uses RFC 8785 canonical JSON so equal lists store as equal
// bytes.
func marshalParams(params []string) (string, error) {
	anys := make([]any, len(params))
	for i, p := range params {
		anys[i] = p
	}
	data, err := ir.MarshalCanonical(anys)
	if err != nil {
		return "", fmt.Errorf("marshal params: %w", err)
	}
	return string(data), nil
}

// unmarshalParams parses a stored parameter list.
func unmarshalParams(data string) ([]string, error) {
	if data == "" || data == "[]" {
		return []string{}, nil
	}
	var params []string
	if err := json.Unmarshal([]byte(data), &params); err != nil {
		return nil, fmt.Errorf("unmarshal params: %w", err)
	}
	return params, nil
}
