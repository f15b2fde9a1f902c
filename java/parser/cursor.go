package parser

// Mark is a restore point captured by Cursor.Mark. It is a plain value:
// resetting to a mark taken earlier makes every later mark meaningless.
type Mark struct {
	pos      int
	split    Token
	hasSplit bool
}

// Cursor is a rewindable view over a lexer's significant tokens. Tokens are
// pulled from the lexer lazily and kept in a buffer, so Reset never rescans
// source text.
type Cursor struct {
	lexer        *Lexer
	tokens       []Token
	comments     []Token
	lexErrors    []Token
	keepComments bool
	done         bool

	pos int
	// split holds the unconsumed remainder of a compound closer that replaces
	// tokens[pos] until it is consumed. The buffer itself is never modified.
	split    Token
	hasSplit bool
}

func NewCursor(lexer *Lexer, keepComments bool) *Cursor {
	return &Cursor{lexer: lexer, keepComments: keepComments}
}

// fill makes sure the buffer holds at least n tokens, or ends with EOF.
func (c *Cursor) fill(n int) {
	for len(c.tokens) < n && !c.done {
		tok := c.lexer.NextToken()
		switch {
		case tok.Kind == TokenWhitespace:
			continue
		case tok.Kind == TokenComment || tok.Kind == TokenLineComment:
			if c.keepComments {
				c.comments = append(c.comments, tok)
			}
			continue
		case tok.Kind == TokenError:
			c.lexErrors = append(c.lexErrors, tok)
		case tok.Kind == TokenEOF:
			c.done = true
		}
		c.tokens = append(c.tokens, tok)
	}
}

func (c *Cursor) at(i int) Token {
	c.fill(i + 1)
	if i < len(c.tokens) {
		return c.tokens[i]
	}
	return c.tokens[len(c.tokens)-1]
}

// Peek returns the token k positions ahead without consuming anything.
// Peek(0) is the current token.
func (c *Cursor) Peek(k int) Token {
	if k == 0 && c.hasSplit {
		return c.split
	}
	return c.at(c.pos + k)
}

// Advance consumes and returns the current token. At end of input it keeps
// returning the EOF token.
func (c *Cursor) Advance() Token {
	tok := c.Peek(0)
	if c.hasSplit {
		c.hasSplit = false
		c.split = Token{}
		c.pos++
		return tok
	}
	if tok.Kind != TokenEOF {
		c.pos++
	}
	return tok
}

func (c *Cursor) Mark() Mark {
	return Mark{pos: c.pos, split: c.split, hasSplit: c.hasSplit}
}

func (c *Cursor) Reset(m Mark) {
	c.pos = m.pos
	c.split = m.split
	c.hasSplit = m.hasSplit
}

// Index is the number of buffered tokens consumed so far. A pending split
// remainder does not count, the compound token it came from is not consumed.
func (c *Cursor) Index() int {
	return c.pos
}

// inject makes rest the current token in place of the token at the cursor.
// rest must be the not yet consumed tail of that token.
func (c *Cursor) inject(rest Token) {
	c.split = rest
	c.hasSplit = true
}

// Comments returns the comments seen so far when comment retention is on.
func (c *Cursor) Comments() []Token {
	return c.comments
}

// LexErrors returns the error tokens the lexer produced so far.
func (c *Cursor) LexErrors() []Token {
	return c.lexErrors
}

// drain pulls the rest of the input through the lexer.
func (c *Cursor) drain() {
	for !c.done {
		c.fill(len(c.tokens) + 64)
	}
}
