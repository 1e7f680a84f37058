// Package diag defines the warning model shared by the log parser, the
// annotator and the fix engine.
//
// # Data model
//
// Warning is the central record. It contains:
//
//   - Line – 1-based line number reported by the compiler.
//   - Col – 1-based column; kept for display, never used for editing.
//   - Kind – which unused-declaration diagnostic fired (Parameter or Variable).
//   - Name – the identifier the compiler complained about.
//
// ByFile groups warnings under the exact path string the compiler printed.
// Package diag performs no IO; parsing lives in internal/warnlog and editing in
// internal/annotate.
//
// # Ordering
//
// Warnings for one file must be applied bottom-up. SortDescending orders a
// slice by Line descending and keeps the log order for equal lines, so an
// insertion above line L never shifts a pending warning with a smaller line.
package diag
