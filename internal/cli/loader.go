package cli

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/loopkit/loopc/internal/ir"
)

//go:embed schema.cue
var schemaCUE string

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric     = "E001" // Generic/unknown error
	ErrCodeNotFound    = "E002" // Kernel file not found
	ErrCodeBadFormat   = "E003" // Unsupported file extension
	ErrCodeCUEFailed   = "E004" // CUE compile/unify failed
	ErrCodeYAMLFailed  = "E005" // YAML parse failed
	ErrCodeDecodeError = "E006" // Kernel decode failed
	ErrCodeSchedule    = "E101" // Kernel could not be scheduled
	ErrCodeRuntime     = "E102" // Program invocation failed
	ErrCodeStoreError  = "E201" // Registry read/write failed
)

// LoadError represents an error that occurred during kernel loading.
type LoadError struct {
	Code    string
	Path    string
	Message string
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// LoadKernel reads a kernel description from a .cue or .yaml/.yml file.
//
// Both front ends funnel through the same generic-map decoder
// (ir.KernelFromAny), so a kernel expressed in either format decodes
// to an identical in-memory form. CUE files are additionally unified
// with the embedded kernel schema before decoding.
func LoadKernel(path string) (*ir.Kernel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "kernel file not found"}
		}
		return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: err.Error()}
	}

	switch filepath.Ext(path) {
	case ".cue":
		return loadCUEKernel(path, data)
	case ".yaml", ".yml":
		return loadYAMLKernel(path, data)
	default:
		return nil, &LoadError{
			Code:    ErrCodeBadFormat,
			Path:    path,
			Message: fmt.Sprintf("unsupported kernel format %q (want .cue, .yaml, or .yml)", filepath.Ext(path)),
		}
	}
}

// loadCUEKernel compiles a CUE kernel file, unifies it with the
// embedded schema, and decodes the result.
func loadCUEKernel(path string, data []byte) (*ir.Kernel, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeCUEFailed, Message: fmt.Sprintf("compiling kernel schema: %v", err)}
	}

	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeCUEFailed, Path: path, Message: fmt.Sprintf("compiling kernel: %v", err)}
	}

	unified := value.Unify(schema.LookupPath(cue.ParsePath("#Kernel")))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, &LoadError{Code: ErrCodeCUEFailed, Path: path, Message: fmt.Sprintf("kernel does not satisfy schema: %v", err)}
	}

	// Round-trip through JSON with UseNumber so large integers survive
	// and floats are caught by the decoder rather than silently
	// truncated.
	jsonBytes, err := unified.MarshalJSON()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeCUEFailed, Path: path, Message: fmt.Sprintf("exporting kernel: %v", err)}
	}

	return decodeKernelJSON(path, jsonBytes)
}

// loadYAMLKernel parses a YAML kernel file and decodes it.
func loadYAMLKernel(path string, data []byte) (*ir.Kernel, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Code: ErrCodeYAMLFailed, Path: path, Message: fmt.Sprintf("parsing YAML: %v", err)}
	}

	k, err := ir.KernelFromAny(doc)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeDecodeError, Path: path, Message: err.Error()}
	}
	return k, nil
}

func decodeKernelJSON(path string, jsonBytes []byte) (*ir.Kernel, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonBytes))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, &LoadError{Code: ErrCodeDecodeError, Path: path, Message: fmt.Sprintf("decoding kernel JSON: %v", err)}
	}

	k, err := ir.KernelFromAny(doc)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeDecodeError, Path: path, Message: err.Error()}
	}
	return k, nil
}
