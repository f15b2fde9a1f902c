// Package parser provides an error-tolerant structural parser for Java source code.
//
// # Overview
//
// The parser recognises enough structure to drive IDE views: type
// declarations, type parameters, member signatures and statement boundaries.
// It performs no name resolution or type checking. It is designed for input
// that is being edited, so malformed text is reported, never fatal.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Cursor    │────▶│   Rules     │
//	│  (bytes)    │     │  (tokens)   │     │ (mark/reset)│     │ (fragments) │
//	└─────────────┘     └─────────────┘     └─────────────┘     └─────────────┘
//	                                               ▲                   │
//	                                               │                   ▼
//	                                        ┌─────────────┐     ┌─────────────┐
//	                                        │ '<' and '>' │     │  Collector  │
//	                                        │ splitting   │     │ (caller's)  │
//	                                        └─────────────┘     └─────────────┘
//
// The lexer produces tokens on demand. The cursor buffers the significant
// ones so a rule can mark a position, try a production and rewind without
// lexing again. Every labeled rule is an attempt: it writes into a private
// collector that is merged into its parent only when the rule succeeds.
//
// # Entry Points
//
// Package functions parse a string that must hold exactly one unit:
//
//	// ParseTypeSpec parses "Map<String, List<Integer>>[]".
//	func ParseTypeSpec(src string, out *Collector, opts ...Option) error
//
//	// ParseStatement parses "for (int i = 0; i < n; i++) sum += i;".
//	func ParseStatement(src string, out *Collector, opts ...Option) error
//
//	// ParseTypeDef parses "class A<T> extends B implements C { ... }".
//	func ParseTypeDef(src string, out *Collector, opts ...Option) error
//
//	// ParseFile parses a whole compilation unit, recovering from errors.
//	func ParseFile(src []byte, out *Collector, opts ...Option) error
//
// A Parser created with New parses one unit per method call and leaves the
// cursor after it, so a caller can parse a sequence of statements.
//
// # Angle Brackets
//
// A '<' in a declaration, after 'new', in a cast or in a local variable
// type opens type arguments. After a name inside an expression it is read
// as a comparison unless a bounded speculative parse closes the list and
// finds '::' behind it, as in ArrayList<String>::new.
//
// Closers such as '>>' and '>>>' are split as nesting demands. The first
// '>' becomes a synthetic token and the remainder is substituted for the
// current token, with exact positions. The buffer itself is never modified,
// so rewinding restores the compound token. When enclosing lists close on
// the remainder the pieces are joined again: the '>>' of List<List<T>>
// comes out as one token inside the inner list.
//
// # Fragments
//
// A Collector receives fragments in source order. A fragment is either a
// raw token or a labeled group:
//
//	TypeSpec
//	  Identifier LinkedList
//	  TypeArguments
//	    < <
//	    TypeSpec
//	      Identifier List
//	      TypeArguments
//	        < <
//	        TypeSpec
//	          Identifier String
//	          [ [
//	          ] ]
//	        > >
//	    > >
//
// # Error Recovery
//
// A failing rule returns false and rewinds. Only a failure with no remaining
// alternative is reported, at the farthest position any alternative reached.
// With recovery enabled, block and body loops report the error, skip to the
// next ';' or balanced '}' and continue; the skipped tokens are kept in an
// Error fragment.
//
// # Thread Safety
//
// A Parser instance is not safe for concurrent use. Parsers share no state,
// so separate instances may run on separate goroutines.
package parser
