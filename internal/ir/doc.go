// Package ir provides the intermediate representation for loopc kernels.
//
// This package contains type definitions and structural helpers only. All
// other internal packages import ir; ir imports nothing internal. This
// ensures IR remains the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - NO float types anywhere - literals are int64
//   - Expr is a sealed interface: Ident, Lit, Call, Assign, Op only
//   - Canonical JSON (RFC 8785) is the only serialization used for hashing
//   - Dependency lists are ordered and never deduplicated by this package
package ir
