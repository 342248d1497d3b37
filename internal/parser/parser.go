// Package parser implements aethc's recursive-descent statement/declaration
// parser and Pratt (precedence-climbing) expression parser, producing an
// untyped ast.Module. A failed `expect` is fatal for the current
// construct — a structured error is recorded with the offending span and
// token, and the parser attempts to resynchronize rather than aborting.
package parser

import (
	"fmt"

	"github.com/aethlang/aethc/internal/ast"
	"github.com/aethlang/aethc/internal/edition"
	"github.com/aethlang/aethc/internal/lexer"
	"github.com/aethlang/aethc/internal/position"
)

// ParseError is a structured parse diagnostic.
type ParseError struct {
	Span    position.Span
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

// Parser drives tokens from a lexer.Lexer into an ast.Module.
type Parser struct {
	lex     *lexer.Lexer
	current lexer.Token
	peek    lexer.Token
	errors  []*ParseError
	edition edition.Edition
}

// New creates a parser reading from l, gating spawn/channel under the
// default compiler edition.
func New(l *lexer.Lexer) *Parser {
	return NewWithEdition(l, edition.Default)
}

// NewWithEdition creates a parser that gates edition-sensitive keywords
// (currently spawn/channel) against ed rather than the default edition.
func NewWithEdition(l *lexer.Lexer, ed edition.Edition) *Parser {
	p := &Parser{lex: l, edition: ed}
	p.advance()
	p.advance()
	return p
}

// Parse is the library entry point named in spec.md §6: `parse(source) ->
// (Module, [LexError])`. Lexing happens lazily as the parser pulls tokens,
// so the returned errors are this parser's structured ParseErrors.
func Parse(source string) (*ast.Module, []*ParseError) {
	p := New(lexer.New(source))
	mod := p.parseModule()
	return mod, p.errors
}

// ParseWithEdition is Parse, but gating spawn/channel against ed instead of
// the default edition.
func ParseWithEdition(source string, ed edition.Edition) (*ast.Module, []*ParseError) {
	p := NewWithEdition(lexer.New(source), ed)
	mod := p.parseModule()
	return mod, p.errors
}

// editionKeywordName reports the feature name edition.Supports expects for
// tt, and whether tt is edition-gated at all.
func editionKeywordName(tt lexer.TokenType) (string, bool) {
	switch tt {
	case lexer.TokenSpawn:
		return "spawn", true
	case lexer.TokenChannel:
		return "channel", true
	default:
		return "", false
	}
}

// rejectGatedKeyword reports a structured error for a spawn/channel token
// encountered where no production accepts it yet, and returns true if it
// handled the token. Distinguishes "not in your edition" from "not
// implemented by this core yet" so the message stays honest: this core has
// no spawn/channel statement grammar regardless of edition.
func (p *Parser) rejectGatedKeyword() bool {
	name, gated := editionKeywordName(p.current.Type)
	if !gated {
		return false
	}
	if !p.edition.Supports(name) {
		p.errorf(p.current.Span, "`%s` requires a language edition >= 0.2.0 (current: %s)", name, p.edition)
	} else {
		p.errorf(p.current.Span, "`%s` is reserved for a future language surface, not yet implemented by this core", name)
	}
	return true
}

func (p *Parser) advance() {
	p.current = p.peek
	p.peek = p.lex.NextToken()
}

func (p *Parser) errorf(span position.Span, format string, args ...any) {
	p.errors = append(p.errors, &ParseError{Span: span, Message: fmt.Sprintf(format, args...)})
}

// expect advances past the current token if it matches tt, else records a
// structured error and does not advance (so callers can attempt recovery).
func (p *Parser) expect(tt lexer.TokenType) bool {
	if p.current.Type == tt {
		p.advance()
		return true
	}
	p.errorf(p.current.Span, "expected %s, found %s %q", tt, p.current.Type, p.current.Literal)
	return false
}

func (p *Parser) parseModule() *ast.Module {
	mod := &ast.Module{}
	for p.current.Type != lexer.TokenEOF {
		item := p.parseItem()
		if item != nil {
			mod.Items = append(mod.Items, item)
		} else {
			// Resynchronize: skip the offending token so lexErrors don't loop.
			p.advance()
		}
	}
	return mod
}

func (p *Parser) parseItem() ast.Item {
	switch p.current.Type {
	case lexer.TokenFn:
		return p.parseFunction()
	case lexer.TokenLet:
		return p.parseGlobalLet()
	default:
		if p.rejectGatedKeyword() {
			return nil
		}
		p.errorf(p.current.Span, "expected item (fn or let), found %s %q", p.current.Type, p.current.Literal)
		return nil
	}
}

func (p *Parser) parseGlobalLet() ast.Item {
	start := p.current.Span
	p.advance() // 'let'
	mutable := false
	if p.current.Type == lexer.TokenMut {
		mutable = true
		p.advance()
	}
	name := p.current.Literal
	if !p.expect(lexer.TokenIdentifier) {
		return nil
	}
	if !p.expect(lexer.TokenAssign) {
		return nil
	}
	expr := p.parseExpr(0)
	span := start.Union(p.current.Span)
	p.expect(lexer.TokenSemicolon)
	return &ast.GlobalLet{Name: name, Mutable: mutable, Expr: expr, Span_: span}
}

func (p *Parser) parseFunction() *ast.Function {
	start := p.current.Span
	p.advance() // 'fn'
	name := p.current.Literal
	p.expect(lexer.TokenIdentifier)
	p.expect(lexer.TokenLParen)

	var params []ast.Param
	for p.current.Type != lexer.TokenRParen && p.current.Type != lexer.TokenEOF {
		pstart := p.current.Span
		pname := p.current.Literal
		p.expect(lexer.TokenIdentifier)
		ptype := ""
		if p.current.Type == lexer.TokenColon {
			p.advance()
			ptype = p.current.Literal
			p.expect(lexer.TokenIdentifier)
		}
		params = append(params, ast.Param{Name: pname, TypeName: ptype, Span_: pstart.Union(p.current.Span)})
		if p.current.Type == lexer.TokenComma {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.TokenRParen)

	returnType := ""
	if p.current.Type == lexer.TokenArrow {
		p.advance()
		returnType = p.current.Literal
		p.expect(lexer.TokenIdentifier)
	}

	body := p.parseBlock()
	body = ensureImplicitReturn(body, p.current.Span)

	return &ast.Function{
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Body:       body,
		Span_:      start.Union(p.current.Span),
	}
}

// ensureImplicitReturn appends `return ()` if the body's final statement is
// not already a Return, per spec.md §4.2.
func ensureImplicitReturn(body []ast.Stmt, at position.Span) []ast.Stmt {
	if len(body) > 0 {
		if _, ok := body[len(body)-1].(*ast.ReturnStmt); ok {
			return body
		}
	}
	return append(body, &ast.ReturnStmt{Expr: nil, Span_: at})
}

func (p *Parser) parseBlock() []ast.Stmt {
	p.expect(lexer.TokenLBrace)
	var stmts []ast.Stmt
	for p.current.Type != lexer.TokenRBrace && p.current.Type != lexer.TokenEOF {
		stmts = append(stmts, p.parseStmt())
	}
	p.expect(lexer.TokenRBrace)
	return stmts
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.current.Type {
	case lexer.TokenLet:
		return p.parseLetStmt()
	case lexer.TokenReturn:
		return p.parseReturnStmt()
	case lexer.TokenIdentifier:
		if p.peek.Type == lexer.TokenAssign {
			return p.parseAssignStmt()
		}
		return p.parseExprStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseLetStmt() ast.Stmt {
	start := p.current.Span
	p.advance() // 'let'
	mutable := false
	if p.current.Type == lexer.TokenMut {
		mutable = true
		p.advance()
	}
	name := p.current.Literal
	p.expect(lexer.TokenIdentifier)
	p.expect(lexer.TokenAssign)
	expr := p.parseExpr(0)
	span := start.Union(p.current.Span)
	p.expect(lexer.TokenSemicolon)
	return &ast.LetStmt{Name: name, Mutable: mutable, Expr: expr, Span_: span}
}

func (p *Parser) parseAssignStmt() ast.Stmt {
	start := p.current.Span
	name := p.current.Literal
	p.advance() // identifier
	p.expect(lexer.TokenAssign)
	expr := p.parseExpr(0)
	span := start.Union(p.current.Span)
	p.expect(lexer.TokenSemicolon)
	return &ast.AssignStmt{Name: name, Expr: expr, Span_: span}
}

func (p *Parser) parseReturnStmt() ast.Stmt {
	start := p.current.Span
	p.advance() // 'return'
	var expr ast.Expr
	if p.current.Type != lexer.TokenSemicolon {
		expr = p.parseExpr(0)
	}
	span := start.Union(p.current.Span)
	p.expect(lexer.TokenSemicolon)
	return &ast.ReturnStmt{Expr: expr, Span_: span}
}

func (p *Parser) parseExprStmt() ast.Stmt {
	start := p.current.Span
	expr := p.parseExpr(0)
	span := start.Union(p.current.Span)
	p.expect(lexer.TokenSemicolon)
	return &ast.ExprStmt{Expr: expr, Span_: span}
}
