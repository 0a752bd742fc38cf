// Package core defines the abstract syntax tree shared by the parser, the
// renderer and the query builder.
//
// This package contains:
//   - The closed set of node variants (Query, clause parts, select items,
//     logical chains and comparable values)
//   - Capability interfaces (Aliasable, Value, Groupable, Orderable)
//   - The immutable function whitelist and literal vocabularies
//   - Tree utilities (Walk, Clone, MapValues, Variables)
//
// The Golden Rule: pkg/core imports ONLY pkg/token and stdlib.
// All other packages depend on core, not the reverse.
package core
