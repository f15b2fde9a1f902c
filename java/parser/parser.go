package parser

import (
	"fmt"
	"io"
)

const (
	defaultMaxGenericDepth  = 32
	defaultSpeculationLimit = 256
	defaultMaxNesting       = 256
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithStartLine(line int) Option {
	return func(p *Parser) {
		p.startLine = line
	}
}

// WithComments keeps comments so Comments can return them.
func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

// WithRecovery makes block and body loops report a failing member or
// statement, skip past it and continue, instead of failing the whole rule.
func WithRecovery() Option {
	return func(p *Parser) {
		p.recover = true
	}
}

// WithMaxGenericDepth bounds how deeply type-argument lists may nest.
func WithMaxGenericDepth(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxGenericDepth = n
		}
	}
}

// WithSpeculationLimit bounds how many tokens the parser may look ahead
// when deciding whether a '<' inside an expression opens type arguments.
func WithSpeculationLimit(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.speculationLimit = n
		}
	}
}

// WithMaxNesting bounds the number of simultaneously open grammar rules.
func WithMaxNesting(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.maxNesting = n
		}
	}
}

// Parser parses units of Java source into a caller-owned Collector.
// A Parser is not safe for concurrent use; parsers share no state, so
// separate instances may run in parallel.
type Parser struct {
	file             string
	startLine        int
	includeComments  bool
	recover          bool
	maxGenericDepth  int
	speculationLimit int
	maxNesting       int

	cur *Cursor
	out *Collector

	depth    int // open type-argument and type-parameter lists
	nesting  int // open rule groups
	budget   int // cursor index speculation may not pass, 0 when unbounded
	noLambda bool

	fail  failure
	diags ErrorList
}

func New(src []byte, opts ...Option) *Parser {
	p := &Parser{
		startLine:        1,
		maxGenericDepth:  defaultMaxGenericDepth,
		speculationLimit: defaultSpeculationLimit,
		maxNesting:       defaultMaxNesting,
	}
	for _, opt := range opts {
		opt(p)
	}
	lexer := NewLexer(src, p.file).withStartLine(p.startLine)
	p.cur = NewCursor(lexer, p.includeComments)
	return p
}

// FromReader reads all of r and returns a parser over it.
func FromReader(r io.Reader, opts ...Option) (*Parser, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return New(data, opts...), nil
}

// Comments returns the comments lexed so far. It is empty unless the
// parser was created WithComments.
func (p *Parser) Comments() []Token {
	return p.cur.Comments()
}

// AtEOF reports whether all significant input has been consumed.
func (p *Parser) AtEOF() bool {
	return p.check(TokenEOF)
}

// Peek returns the next unconsumed token.
func (p *Parser) Peek() Token {
	return p.peek()
}

// TypeSpec parses one type specifier at the cursor.
func (p *Parser) TypeSpec(out *Collector) error {
	return p.run(out, p.typeSpec)
}

// Statement parses one statement at the cursor.
func (p *Parser) Statement(out *Collector) error {
	return p.run(out, p.statement)
}

// TypeDef parses one type declaration at the cursor.
func (p *Parser) TypeDef(out *Collector) error {
	return p.run(out, p.typeDef)
}

// CompilationUnit parses package and import declarations and all type
// declarations up to end of input. It always recovers from errors; the
// returned error is an ErrorList holding every diagnostic, or nil.
func (p *Parser) CompilationUnit(out *Collector) error {
	p.recover = true
	err := p.run(out, p.compilationUnit)
	if _, recovered := err.(ErrorList); err != nil && !recovered {
		return err
	}
	p.cur.drain()
	for _, tok := range p.cur.LexErrors() {
		if !p.hasDiagnosticAt(tok.Span.Start.Offset) {
			p.diags.add(&SyntaxError{
				Pos:     tok.Span.Start,
				Message: "illegal character " + fmt.Sprintf("%q", tok.Literal),
				Got:     tok,
			})
		}
	}
	p.diags.Sort()
	return p.diags.Err()
}

func (p *Parser) hasDiagnosticAt(offset int) bool {
	for _, d := range p.diags {
		if d.Pos.Offset == offset {
			return true
		}
	}
	return false
}

func (p *Parser) run(out *Collector, rule func() bool) error {
	if out == nil {
		out = &Collector{}
	}
	p.out = out
	p.fail = failure{}
	p.diags = nil
	p.depth = 0
	p.nesting = 0
	p.budget = 0
	p.noLambda = false

	if !rule() {
		if err := p.fail.err(); err != nil {
			return err
		}
		return p.unexpected()
	}
	if p.depth != 0 {
		return &SyntaxError{Pos: p.peek().Span.Start, Message: "unbalanced type argument list", Got: p.peek()}
	}
	return p.diags.Err()
}

func (p *Parser) unexpected() *SyntaxError {
	tok := p.peek()
	return &SyntaxError{Pos: tok.Span.Start, Message: "unexpected " + describe(tok), Got: tok}
}

// whole runs entry into a scratch collector and requires it to consume all
// input. On success, or on a recovered parse, the fragments move to out.
func (p *Parser) whole(out *Collector, unit string, entry func(*Collector) error) error {
	local := &Collector{}
	err := entry(local)
	if _, recovered := err.(ErrorList); err != nil && !recovered {
		return err
	}
	if err == nil && !p.AtEOF() {
		tok := p.peek()
		return &SyntaxError{Pos: tok.Span.Start, Message: "unexpected " + describe(tok) + " after " + unit, Got: tok}
	}
	if out != nil {
		for _, f := range local.frags {
			out.append(f)
		}
	}
	return err
}

// ParseTypeSpec parses src as exactly one type specifier.
func ParseTypeSpec(src string, out *Collector, opts ...Option) error {
	p := New([]byte(src), opts...)
	return p.whole(out, "type", p.TypeSpec)
}

// ParseStatement parses src as exactly one statement.
func ParseStatement(src string, out *Collector, opts ...Option) error {
	p := New([]byte(src), opts...)
	return p.whole(out, "statement", p.Statement)
}

// ParseTypeDef parses src as exactly one type declaration.
func ParseTypeDef(src string, out *Collector, opts ...Option) error {
	p := New([]byte(src), opts...)
	return p.whole(out, "type declaration", p.TypeDef)
}

// ParseFile parses a whole compilation unit with error recovery.
func ParseFile(src []byte, out *Collector, opts ...Option) error {
	p := New(src, opts...)
	return p.whole(out, "compilation unit", p.CompilationUnit)
}

func (p *Parser) peek() Token {
	return p.cur.Peek(0)
}

func (p *Parser) peekN(n int) Token {
	return p.cur.Peek(n)
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) checkN(n int, kind TokenKind) bool {
	return p.peekN(n).Kind == kind
}

func (p *Parser) match(kinds ...TokenKind) bool {
	k := p.peek().Kind
	for _, kind := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// isWord reports whether the current token is the contextual keyword word.
func (p *Parser) isWord(word string) bool {
	tok := p.peek()
	return tok.Kind == TokenIdent && tok.Literal == word
}

func (p *Parser) isWordN(n int, word string) bool {
	tok := p.peekN(n)
	return tok.Kind == TokenIdent && tok.Literal == word
}

// take consumes the current token and appends it to the output.
func (p *Parser) take() Token {
	tok := p.cur.Advance()
	p.out.append(tokenFragment(tok))
	return tok
}

func (p *Parser) emit(tok Token) {
	p.out.append(tokenFragment(tok))
}

func (p *Parser) expect(kind TokenKind) bool {
	if p.check(kind) {
		p.take()
		return true
	}
	return p.expected(quoted(kind))
}

func (p *Parser) expectIdent() bool {
	return p.expect(TokenIdent)
}

func (p *Parser) expectWord(word string) bool {
	if p.isWord(word) {
		p.take()
		return true
	}
	return p.expected("'" + word + "'")
}

// accept consumes the current token if it has the given kind.
func (p *Parser) accept(kind TokenKind) bool {
	if p.check(kind) {
		p.take()
		return true
	}
	return false
}

// expected records what would have been accepted at the cursor and fails.
func (p *Parser) expected(what string) bool {
	p.fail.record(p.peek(), what)
	return false
}

// frame is an open parse attempt: a restore point plus the local
// collector the attempt writes into.
type frame struct {
	parent *Collector
	mark   Mark
	depth  int
	diags  int
}

func (p *Parser) begin() frame {
	f := frame{parent: p.out, mark: p.cur.Mark(), depth: p.depth, diags: len(p.diags)}
	p.out = &Collector{}
	p.nesting++
	return f
}

// commit wraps the attempt's fragments in a group and hands it to the parent.
func (p *Parser) commit(f frame, label Label) bool {
	children := p.out.frags
	p.out = f.parent
	p.nesting--
	p.out.append(groupFragment(label, children))
	return true
}

// commitOptional is commit, but an attempt that produced nothing leaves no group.
func (p *Parser) commitOptional(f frame, label Label) bool {
	if p.out.Len() == 0 {
		p.out = f.parent
		p.nesting--
		return true
	}
	return p.commit(f, label)
}

// splice hands the attempt's fragments to the parent without wrapping.
func (p *Parser) splice(f frame) bool {
	children := p.out.frags
	p.out = f.parent
	p.nesting--
	for _, child := range children {
		p.out.append(child)
	}
	return true
}

// abandon rewinds everything the attempt did.
func (p *Parser) abandon(f frame) bool {
	p.out = f.parent
	p.cur.Reset(f.mark)
	p.depth = f.depth
	p.diags = p.diags[:f.diags]
	p.nesting--
	return false
}

func (p *Parser) tooDeep() bool {
	if p.nesting > p.maxNesting {
		p.expected("less deeply nested code")
		return true
	}
	return false
}

// group runs rule as an attempt and wraps what it produced under label.
func (p *Parser) group(label Label, rule func() bool) bool {
	f := p.begin()
	if p.tooDeep() || !rule() {
		return p.abandon(f)
	}
	return p.commit(f, label)
}

// attempt runs rule and keeps its fragments unwrapped on success.
func (p *Parser) attempt(rule func() bool) bool {
	f := p.begin()
	if p.tooDeep() || !rule() {
		return p.abandon(f)
	}
	return p.splice(f)
}

// report turns the farthest recorded failure into a diagnostic.
func (p *Parser) report() {
	err := p.fail.err()
	if err == nil {
		err = p.unexpected()
	}
	if n := len(p.diags); n == 0 || p.diags[n-1].Error() != err.Error() {
		p.diags.add(err)
	}
	p.fail = failure{}
}

// skipToSync consumes tokens up to and including the next ';' at the
// current bracket level, or through a balanced '{...}' block. It stops in
// front of a '}' that closes the enclosing block. The skipped tokens are
// wrapped in a LabelError fragment.
func (p *Parser) skipToSync() {
	f := p.begin()
	level := 0
loop:
	for !p.check(TokenEOF) {
		switch p.peek().Kind {
		case TokenLBrace, TokenLParen, TokenLBracket:
			level++
		case TokenRParen, TokenRBracket:
			if level == 0 {
				// a stray closer is skipped on its own
				p.take()
				break loop
			}
			level--
		case TokenRBrace:
			if level == 0 {
				break loop
			}
			level--
			if level == 0 {
				p.take()
				break loop
			}
		case TokenSemicolon:
			if level == 0 {
				p.take()
				break loop
			}
		}
		p.take()
	}
	p.commitOptional(f, LabelError)
}

// recoverIn reports the current failure and skips to the next member or
// statement. It returns false when recovery is off.
func (p *Parser) recoverIn() bool {
	if !p.recover {
		return false
	}
	p.report()
	start := p.cur.Mark()
	p.skipToSync()
	if p.cur.Mark() == start && !p.check(TokenEOF) {
		f := p.begin()
		p.take()
		p.commit(f, LabelError)
	}
	return true
}

// unterminated handles end of input where a '}' is still owed. With
// recovery the construct is closed implicitly so the partial structure
// survives.
func (p *Parser) unterminated() bool {
	p.expected("'}'")
	if !p.recover {
		return false
	}
	p.report()
	return true
}

// nested bounds the recursion of rules that are not groups.
func (p *Parser) nested(rule func() bool) bool {
	p.nesting++
	defer func() { p.nesting-- }()
	if p.nesting > p.maxNesting {
		return p.expected("less deeply nested code")
	}
	return rule()
}
