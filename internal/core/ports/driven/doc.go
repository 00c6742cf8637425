// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - DocumentStore: Concurrent document repository (memory or SQLite)
//   - FileSystem: File reads, directory walks and change streams
//   - Tokenizer: Lexical scope classification of source text
//   - PatternCompiler / Matcher: Glob compilation and matching
//   - ConfigLoader: Site configuration
//
// # Optional Interfaces
//
//   - Clock: Time source; services fall back to the wall clock when nil.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
