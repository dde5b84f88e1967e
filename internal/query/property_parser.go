package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Nelyah/bee/internal/lexer"
	"github.com/Nelyah/bee/internal/task"
)

// PropertyParser turns the free-form argument text of `add`/`modify` into a
// task.Properties patch: run-of-the-mill words accumulate into the summary,
// while recognized prefixes (+tag, -tag, status:, project:, depends:,
// due:) are pulled out as structured fields instead.
type PropertyParser struct {
	c   *cursor
	now time.Time
}

// NewPropertyParser tokenizes input and prepares a parser. now anchors any
// relative date expression a "due:" clause contains.
func NewPropertyParser(input string, now time.Time) (*PropertyParser, error) {
	toks, err := lexer.Tokenize(input)
	if err != nil {
		return nil, err
	}
	return &PropertyParser{c: newCursor(toks), now: now}, nil
}

// Parse consumes the whole input and returns the resulting patch.
func (p *PropertyParser) Parse() (task.Properties, error) {
	var props task.Properties
	var summary strings.Builder

	appendSummary := func(s string) {
		if summary.Len() > 0 {
			summary.WriteByte(' ')
		}
		summary.WriteString(s)
	}

	for {
		tok := p.c.current()
		switch tok.Type {
		case lexer.Eof:
			if s := strings.TrimSpace(summary.String()); s != "" {
				props.Summary = &s
			}
			return props, nil

		case lexer.Blank:
			p.c.advance()

		case lexer.WordString, lexer.String, lexer.Int, lexer.Uuid,
			lexer.OperatorAnd, lexer.OperatorOr, lexer.OperatorXor,
			lexer.LeftParenthesis, lexer.RightParenthesis,
			lexer.FilterDateDueBefore, lexer.FilterDateDueAfter,
			lexer.FilterDateEndBefore, lexer.FilterDateEndAfter,
			lexer.FilterDateCreatedBefore, lexer.FilterDateCreatedAfter:
			appendSummary(tok.Literal)
			p.c.advance()

		case lexer.FilterStatus:
			p.c.advance()
			val := p.c.current()
			if val.Type != lexer.WordString {
				return props, fmt.Errorf("expected a status name after 'status:'")
			}
			p.c.advance()
			st, err := task.ParseStatus(val.Literal)
			if err != nil {
				return props, fmt.Errorf("in 'status:': %w", err)
			}
			props.Status = &st

		case lexer.ProjectPrefix:
			p.c.advance()
			val := p.c.current()
			if val.Type != lexer.WordString && val.Type != lexer.String {
				return props, fmt.Errorf("expected a project name after 'project:'")
			}
			p.c.advance()
			if val.Literal == "none" {
				props.Project = &task.ProjectPatch{Clear: true}
			} else {
				if !task.ValidateProjectName(val.Literal) {
					return props, fmt.Errorf("invalid project name %q", val.Literal)
				}
				props.Project = &task.ProjectPatch{Name: val.Literal}
			}

		case lexer.TagPlusPrefix, lexer.TagMinusPrefix:
			isAdd := tok.Type == lexer.TagPlusPrefix
			p.c.advance()
			val := p.c.current()
			if val.Type != lexer.WordString {
				// Not actually a tag prefix: fold the symbol itself back
				// into free text, matching process_tag_prefix's fallback.
				appendSummary(tok.Literal)
				continue
			}
			p.c.advance()
			if isAdd {
				props.TagsAdd = append(props.TagsAdd, val.Literal)
			} else {
				props.TagsRemove = append(props.TagsRemove, val.Literal)
			}

		case lexer.DependsOn:
			p.c.advance()
			if err := p.parseDependsOn(&props); err != nil {
				return props, err
			}

		case lexer.FilterDateDue:
			p.c.advance()
			when, err := readDateExpr(p.c, p.now)
			if err != nil {
				return props, fmt.Errorf("in 'due:': %w", err)
			}
			props.DateDue = &when

		default:
			return props, fmt.Errorf("unexpected token %s (%q) in task properties", tok.Type, tok.Literal)
		}
	}
}

func (p *PropertyParser) parseDependsOn(props *task.Properties) error {
	val := p.c.current()
	switch val.Type {
	case lexer.WordString:
		if val.Literal == "none" {
			p.c.advance()
			empty := []task.DependsOnIdentifier{}
			props.DependsOn = &empty
			return nil
		}
		return fmt.Errorf("expected an id, a uuid, or 'none' after 'depends:'")
	case lexer.Int:
		p.c.advance()
		id, err := strconv.Atoi(val.Literal)
		if err != nil {
			return fmt.Errorf("invalid task id %q: %w", val.Literal, err)
		}
		p.appendDependsOn(props, task.DependsOnByID(id))
		return nil
	case lexer.Uuid:
		p.c.advance()
		u, err := uuid.Parse(val.Literal)
		if err != nil {
			return fmt.Errorf("invalid uuid %q: %w", val.Literal, err)
		}
		p.appendDependsOn(props, task.DependsOnByUUID(u))
		return nil
	default:
		return fmt.Errorf("expected an id, a uuid, or 'none' after 'depends:'")
	}
}

func (p *PropertyParser) appendDependsOn(props *task.Properties, id task.DependsOnIdentifier) {
	if props.DependsOn == nil {
		props.DependsOn = &[]task.DependsOnIdentifier{}
	}
	*props.DependsOn = append(*props.DependsOn, id)
}
