package query

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/Nelyah/bee/internal/lexer"
	"github.com/Nelyah/bee/internal/task"
)

// scopeOp is the pending connective waiting to combine the next leaf (or
// parenthesized group) into the filter built so far.
type scopeOp int

const (
	opNone scopeOp = iota
	opAnd
	opOr
	opXor
)

// FilterParser turns a filter expression into a Filter tree.
type FilterParser struct {
	c   *cursor
	now time.Time
}

// NewFilterParser tokenizes input and prepares a parser. now anchors any
// relative date expressions the filter contains (created.before:today, etc).
func NewFilterParser(input string, now time.Time) (*FilterParser, error) {
	toks, err := lexer.Tokenize(input)
	if err != nil {
		return nil, err
	}
	return &FilterParser{c: newCursor(toks), now: now}, nil
}

// Parse consumes the whole input and returns the resulting filter tree. A
// filter that is nothing but one or more bare ids (e.g. "3 5 9") is
// rewritten into an Or of those ids, matching any task named by any of them.
func (p *FilterParser) Parse() (Filter, error) {
	result, err := p.parseExpr(0)
	if err != nil {
		return nil, fmt.Errorf("could not parse the filter expression. %w", err)
	}
	if p.c.current().Type == lexer.RightParenthesis {
		return nil, fmt.Errorf("could not parse the filter expression. unexpected ')'")
	}
	if ids, only := OnlyTaskIDs(result); only && len(ids) > 0 {
		var rebuilt Filter = Root{}
		for _, id := range ids {
			rebuilt = or(rebuilt, TaskIDFilter{ID: id})
		}
		return rebuilt, nil
	}
	return result, nil
}

func combine(op scopeOp, existing, next Filter) Filter {
	switch op {
	case opOr:
		return or(existing, next)
	case opXor:
		return xorOf(existing, next)
	default:
		// Juxtaposition without an explicit connective is an implicit AND.
		return and(existing, next)
	}
}

func (p *FilterParser) parseExpr(depth int) (Filter, error) {
	var result Filter = Root{}
	op := opNone

	for {
		p.c.skipBlank()
		tok := p.c.current()

		switch tok.Type {
		case lexer.Eof:
			return result, nil
		case lexer.RightParenthesis:
			if depth == 0 {
				return result, nil
			}
			return result, nil
		case lexer.LeftParenthesis:
			p.c.advance()
			sub, err := p.parseExpr(depth + 1)
			if err != nil {
				return nil, err
			}
			if p.c.current().Type != lexer.RightParenthesis {
				return nil, fmt.Errorf("expected ')' to close a group")
			}
			p.c.advance()
			result = combine(op, result, sub)
			op = opNone
		case lexer.OperatorAnd:
			if op != opNone {
				return nil, fmt.Errorf("two operators in a row before %q", tok.Literal)
			}
			op = opAnd
			p.c.advance()
		case lexer.OperatorOr:
			if op != opNone {
				return nil, fmt.Errorf("two operators in a row before %q", tok.Literal)
			}
			op = opOr
			p.c.advance()
		case lexer.OperatorXor:
			if op != opNone {
				return nil, fmt.Errorf("two operators in a row before %q", tok.Literal)
			}
			op = opXor
			p.c.advance()
		case lexer.Blank:
			p.c.advance()
		default:
			leaf, err := p.parseLeaf()
			if err != nil {
				return nil, err
			}
			if leaf != nil {
				result = combine(op, result, leaf)
				op = opNone
			}
		}
	}
}

func (p *FilterParser) parseLeaf() (Filter, error) {
	tok := p.c.current()
	switch tok.Type {
	case lexer.WordString, lexer.String:
		p.c.advance()
		return StringFilter{Text: tok.Literal}, nil

	case lexer.Int:
		p.c.advance()
		id, err := strconv.Atoi(tok.Literal)
		if err != nil {
			return nil, fmt.Errorf("invalid task id %q: %w", tok.Literal, err)
		}
		return TaskIDFilter{ID: id}, nil

	case lexer.Uuid:
		p.c.advance()
		u, err := uuid.Parse(tok.Literal)
		if err != nil {
			return nil, fmt.Errorf("invalid uuid %q: %w", tok.Literal, err)
		}
		return UuidFilter{UUID: u}, nil

	case lexer.FilterStatus:
		p.c.advance()
		val := p.c.current()
		if val.Type != lexer.WordString && val.Type != lexer.String {
			return nil, fmt.Errorf("expected a status name after 'status:'")
		}
		p.c.advance()
		st, err := task.ParseStatus(val.Literal)
		if err != nil {
			return nil, fmt.Errorf("in 'status:' filter: %w", err)
		}
		return StatusFilter{Status: st}, nil

	case lexer.ProjectPrefix:
		p.c.advance()
		val := p.c.current()
		if val.Type != lexer.WordString && val.Type != lexer.String {
			return nil, fmt.Errorf("expected a project name after 'project:'")
		}
		p.c.advance()
		return ProjectFilter{Name: val.Literal}, nil

	case lexer.TagPlusPrefix, lexer.TagMinusPrefix:
		negate := tok.Type == lexer.TagMinusPrefix
		p.c.advance()
		val := p.c.current()
		if val.Type != lexer.WordString {
			return nil, fmt.Errorf("expected a tag name after a %s prefix", tok.Literal)
		}
		p.c.advance()
		return TagFilter{Tag: val.Literal, Negate: negate}, nil

	case lexer.DependsOn:
		p.c.advance()
		return p.parseDependsOn()

	case lexer.FilterDateDue:
		p.c.advance()
		return HasDueFilter{}, nil

	case lexer.FilterDateDueBefore:
		p.c.advance()
		when, err := readDateExpr(p.c, p.now)
		if err != nil {
			return nil, fmt.Errorf("in 'due.before:' filter: %w", err)
		}
		return DateFilter{Field: DateFieldDue, Before: true, When: when}, nil

	case lexer.FilterDateDueAfter:
		p.c.advance()
		when, err := readDateExpr(p.c, p.now)
		if err != nil {
			return nil, fmt.Errorf("in 'due.after:' filter: %w", err)
		}
		return DateFilter{Field: DateFieldDue, Before: false, When: when}, nil

	case lexer.FilterDateCreatedBefore:
		p.c.advance()
		when, err := readDateExpr(p.c, p.now)
		if err != nil {
			return nil, fmt.Errorf("in 'created.before:' filter: %w", err)
		}
		return DateFilter{Field: DateFieldCreated, Before: true, When: when}, nil

	case lexer.FilterDateCreatedAfter:
		p.c.advance()
		when, err := readDateExpr(p.c, p.now)
		if err != nil {
			return nil, fmt.Errorf("in 'created.after:' filter: %w", err)
		}
		return DateFilter{Field: DateFieldCreated, Before: false, When: when}, nil

	case lexer.FilterDateEndBefore:
		p.c.advance()
		when, err := readDateExpr(p.c, p.now)
		if err != nil {
			return nil, fmt.Errorf("in 'end.before:' filter: %w", err)
		}
		return DateFilter{Field: DateFieldCompleted, Before: true, When: when}, nil

	case lexer.FilterDateEndAfter:
		p.c.advance()
		when, err := readDateExpr(p.c, p.now)
		if err != nil {
			return nil, fmt.Errorf("in 'end.after:' filter: %w", err)
		}
		return DateFilter{Field: DateFieldCompleted, Before: false, When: when}, nil

	default:
		return nil, fmt.Errorf("unexpected token %s (%q)", tok.Type, tok.Literal)
	}
}

func (p *FilterParser) parseDependsOn() (Filter, error) {
	val := p.c.current()
	switch val.Type {
	case lexer.WordString:
		if val.Literal == "none" {
			p.c.advance()
			return NoDependsFilter{}, nil
		}
		return nil, fmt.Errorf("expected an id, a uuid, or 'none' after 'depends:'")
	case lexer.Int:
		p.c.advance()
		id, err := strconv.Atoi(val.Literal)
		if err != nil {
			return nil, fmt.Errorf("invalid task id %q: %w", val.Literal, err)
		}
		return DependsOnFilter{Identifier: task.DependsOnByID(id)}, nil
	case lexer.Uuid:
		p.c.advance()
		u, err := uuid.Parse(val.Literal)
		if err != nil {
			return nil, fmt.Errorf("invalid uuid %q: %w", val.Literal, err)
		}
		return DependsOnFilter{Identifier: task.DependsOnByUUID(u)}, nil
	default:
		return nil, fmt.Errorf("expected an id, a uuid, or 'none' after 'depends:'")
	}
}
