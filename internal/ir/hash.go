package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainKernel  = "loopc/kernel/v1"
	DomainProgram = "loopc/program/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// KernelHash computes the content-addressed identity of a kernel
// description. The hash is stable across processes given the same
// instructions, domains, and declared dependencies.
//
// NOTE: because dependency inference mutates Deps in place, hashing a
// kernel after compilation yields a different value than hashing the
// pristine input. Callers wanting input identity must hash first.
func KernelHash(k *Kernel) (string, error) {
	canonical, err := MarshalCanonical(KernelToAny(k))
	if err != nil {
		return "", fmt.Errorf("KernelHash: %w", err)
	}
	return hashWithDomain(DomainKernel, canonical), nil
}

// ProgramHash computes the content-addressed identity of a lowered
// program body, given its canonical JSON encoding.
func ProgramHash(canonicalBody []byte) string {
	return hashWithDomain(DomainProgram, canonicalBody)
}
