package parser

import (
	"github.com/aethlang/aethc/internal/ast"
	"github.com/aethlang/aethc/internal/lexer"
)

// bindingPower is a left/right binding-power pair for an infix operator,
// per spec.md §4.2's precedence table.
type bindingPower struct {
	left, right int
}

// infixPower maps an infix-capable token to its binding powers. `||` and
// `&&` share one level and fold left to right. `==` and friends have left ==
// right == 0, so a comparison's right operand is parsed at the lowest level
// and may itself contain a comparison: `1 < 2 < 3` parses as `1 < (2 < 3)`.
var infixPower = map[lexer.TokenType]bindingPower{
	lexer.TokenOrOr:    {0, 1},
	lexer.TokenAndAnd:  {0, 1},
	lexer.TokenEq:      {0, 0},
	lexer.TokenNe:      {0, 0},
	lexer.TokenLt:      {0, 0},
	lexer.TokenLe:      {0, 0},
	lexer.TokenGt:      {0, 0},
	lexer.TokenGe:      {0, 0},
	lexer.TokenPlus:    {1, 2},
	lexer.TokenMinus:   {1, 2},
	lexer.TokenStar:    {3, 4},
	lexer.TokenSlash:   {3, 4},
	lexer.TokenPercent: {3, 4},
}

const prefixBindingPower = 5

func toBinaryOp(tt lexer.TokenType) ast.BinaryOp {
	switch tt {
	case lexer.TokenPlus:
		return ast.OpAdd
	case lexer.TokenMinus:
		return ast.OpSub
	case lexer.TokenStar:
		return ast.OpMul
	case lexer.TokenSlash:
		return ast.OpDiv
	case lexer.TokenPercent:
		return ast.OpMod
	case lexer.TokenEq:
		return ast.OpEq
	case lexer.TokenNe:
		return ast.OpNe
	case lexer.TokenLt:
		return ast.OpLt
	case lexer.TokenLe:
		return ast.OpLe
	case lexer.TokenGt:
		return ast.OpGt
	case lexer.TokenGe:
		return ast.OpGe
	case lexer.TokenAndAnd:
		return ast.OpAnd
	case lexer.TokenOrOr:
		return ast.OpOr
	default:
		return -1
	}
}

// parseExpr parses an expression, consuming infix operators whose left
// binding power is >= minBP. This is the standard precedence-climbing
// (Pratt) loop: parse one prefix/atom, then repeatedly fold in infix
// operators that bind at least as tightly as what the caller asked for.
// After folding a comparison the loop breaks. Its right operand was parsed
// at power 0 and has already taken every infix operator that follows, so
// `1 < 2 < 3` parses as `1 < (2 < 3)`; the parser does not reject chained
// comparisons.
func (p *Parser) parseExpr(minBP int) ast.Expr {
	left := p.parsePrefix()

	for {
		bp, ok := infixPower[p.current.Type]
		if !ok || bp.left < minBP {
			break
		}
		op := toBinaryOp(p.current.Type)
		opSpan := p.current.Span
		p.advance()
		right := p.parseExpr(bp.right)
		left = &ast.Binary{Op: op, LHS: left, RHS: right, Span_: left.Span().Union(opSpan).Union(right.Span())}

		if isComparison(op) {
			break
		}
	}
	return left
}

func isComparison(op ast.BinaryOp) bool {
	switch op {
	case ast.OpEq, ast.OpNe, ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		return true
	default:
		return false
	}
}

// parsePrefix parses a unary-prefix expression or an atom, then folds in
// any postfix call syntax, which always binds tightest per spec.md §4.2.
func (p *Parser) parsePrefix() ast.Expr {
	switch p.current.Type {
	case lexer.TokenMinus:
		start := p.current.Span
		p.advance()
		operand := p.parseExpr(prefixBindingPower)
		return &ast.Unary{Op: ast.OpNeg, RHS: operand, Span_: start.Union(operand.Span())}
	case lexer.TokenNot:
		start := p.current.Span
		p.advance()
		operand := p.parseExpr(prefixBindingPower)
		return &ast.Unary{Op: ast.OpNot, RHS: operand, Span_: start.Union(operand.Span())}
	case lexer.TokenAmp:
		start := p.current.Span
		p.advance()
		mutable := false
		if p.current.Type == lexer.TokenMut {
			mutable = true
			p.advance()
		}
		target := p.parseExpr(prefixBindingPower)
		return &ast.Borrow{Mutable: mutable, Target: target, Span_: start.Union(target.Span())}
	default:
		return p.parsePostfix(p.parseAtom())
	}
}

func (p *Parser) parsePostfix(expr ast.Expr) ast.Expr {
	for p.current.Type == lexer.TokenLParen {
		start := expr.Span()
		p.advance() // '('
		var args []ast.Expr
		for p.current.Type != lexer.TokenRParen && p.current.Type != lexer.TokenEOF {
			args = append(args, p.parseExpr(0))
			if p.current.Type == lexer.TokenComma {
				p.advance()
			} else {
				break
			}
		}
		endSpan := p.current.Span
		p.expect(lexer.TokenRParen)
		expr = &ast.Call{Callee: expr, Args: args, Span_: start.Union(endSpan)}
	}
	return expr
}

func (p *Parser) parseAtom() ast.Expr {
	tok := p.current
	switch tok.Type {
	case lexer.TokenInteger:
		p.advance()
		return &ast.Literal{Kind: ast.LitInt, IntVal: tok.IntVal, Span_: tok.Span}
	case lexer.TokenFloat:
		p.advance()
		return &ast.Literal{Kind: ast.LitFloat, FloatVal: tok.FloatVal, Span_: tok.Span}
	case lexer.TokenString:
		p.advance()
		return &ast.Literal{Kind: ast.LitStr, StrVal: tok.StrVal, Span_: tok.Span}
	case lexer.TokenBool:
		p.advance()
		return &ast.Literal{Kind: ast.LitBool, BoolVal: tok.Literal == "true", Span_: tok.Span}
	case lexer.TokenIdentifier:
		p.advance()
		return &ast.Ident{Name: tok.Literal, Span_: tok.Span}
	case lexer.TokenLParen:
		p.advance()
		if p.current.Type == lexer.TokenRParen {
			// `()` is the Unit literal.
			endSpan := p.current.Span
			p.advance()
			return &ast.Literal{Kind: ast.LitUnit, Span_: tok.Span.Union(endSpan)}
		}
		inner := p.parseExpr(0)
		p.expect(lexer.TokenRParen)
		return inner
	default:
		if p.rejectGatedKeyword() {
			p.advance()
			return &ast.Literal{Kind: ast.LitUnit, Span_: tok.Span}
		}
		p.errorf(tok.Span, "expected expression, found %s %q", tok.Type, tok.Literal)
		p.advance()
		return &ast.Literal{Kind: ast.LitUnit, Span_: tok.Span}
	}
}
