package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Nelyah/bee/internal/lexer"
)

// unitDuration maps a duration word (singular or plural, or one of the
// short forms y, mo, w, d, h, m, s) to its length.
func unitDuration(word string) (time.Duration, error) {
	switch word {
	case "s":
		return time.Second, nil
	case "m":
		return time.Minute, nil
	case "h":
		return time.Hour, nil
	case "d":
		return 24 * time.Hour, nil
	case "w":
		return 7 * 24 * time.Hour, nil
	case "mo":
		return 30 * 24 * time.Hour, nil
	case "y":
		return 365 * 24 * time.Hour, nil
	}
	switch strings.TrimSuffix(word, "s") {
	case "second":
		return time.Second, nil
	case "minute":
		return time.Minute, nil
	case "hour":
		return time.Hour, nil
	case "day":
		return 24 * time.Hour, nil
	case "week":
		return 7 * 24 * time.Hour, nil
	case "month":
		return 30 * 24 * time.Hour, nil
	case "year":
		return 365 * 24 * time.Hour, nil
	default:
		return 0, fmt.Errorf("unrecognized duration unit %q", word)
	}
}

// anchorTime resolves one of the fixed anchor words relative to now.
func anchorTime(word string, now time.Time) (time.Time, bool) {
	y, m, d := now.Date()
	startOfDay := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	switch word {
	case "now":
		return now, true
	case "today":
		return startOfDay, true
	case "tomorrow":
		return startOfDay.Add(24 * time.Hour), true
	case "yesterday":
		return startOfDay.Add(-24 * time.Hour), true
	case "eod":
		return startOfDay.Add(18 * time.Hour), true
	default:
		return time.Time{}, false
	}
}

// readDuration consumes an Int token followed by a unit word, e.g. "3 days".
func readDuration(c *cursor) (time.Duration, error) {
	tok := c.current()
	if tok.Type != lexer.Int {
		return 0, fmt.Errorf("expected a number in a date expression, got %s", tok.Type)
	}
	n, err := strconv.Atoi(tok.Literal)
	if err != nil {
		return 0, fmt.Errorf("invalid duration quantity %q: %w", tok.Literal, err)
	}
	c.advance()
	c.skipBlank()

	unitTok := c.current()
	if unitTok.Type != lexer.WordString {
		return 0, fmt.Errorf("expected a duration unit in a date expression, got %s", unitTok.Type)
	}
	unit, err := unitDuration(unitTok.Literal)
	if err != nil {
		return 0, err
	}
	c.advance()
	return time.Duration(n) * unit, nil
}

// readDateExpr parses one date expression starting at the current token:
// an anchor word (today, tomorrow, yesterday, now, eod), an "in N unit"
// forward duration, or an "N unit [ago]" duration, each optionally followed
// by any number of "+N unit" / "-N unit" adjustments. It consumes exactly
// the tokens that belong to the expression and leaves the cursor
// positioned right after, so trailing filter clauses parse normally.
func readDateExpr(c *cursor, now time.Time) (time.Time, error) {
	c.skipBlank()
	tok := c.current()

	var result time.Time
	switch {
	case tok.Type == lexer.WordString && tok.Literal == "in":
		c.advance()
		c.skipBlank()
		d, err := readDuration(c)
		if err != nil {
			return time.Time{}, err
		}
		result = now.Add(d)
	case tok.Type == lexer.WordString:
		anchor, ok := anchorTime(tok.Literal, now)
		if !ok {
			return time.Time{}, fmt.Errorf("unrecognized date expression %q", tok.Literal)
		}
		c.advance()
		result = anchor
	case tok.Type == lexer.Int:
		d, err := readDuration(c)
		if err != nil {
			return time.Time{}, err
		}
		c.skipBlank()
		if w := c.current(); w.Type == lexer.WordString && w.Literal == "ago" {
			c.advance()
			result = now.Add(-d)
		} else {
			result = now.Add(d)
		}
	default:
		return time.Time{}, fmt.Errorf("expected a date expression, got %s", tok.Type)
	}

	for {
		mark := c.pos
		c.skipBlank()
		tok = c.current()
		var sign time.Duration
		switch tok.Type {
		case lexer.TagPlusPrefix:
			sign = 1
		case lexer.TagMinusPrefix:
			sign = -1
		default:
			c.backN(c.pos - mark)
			return result, nil
		}
		c.advance()
		c.skipBlank()
		d, err := readDuration(c)
		if err != nil {
			// Not an adjustment (e.g. "-main" is a tag clause): rewind to
			// just after the expression and let the caller parse the rest.
			c.backN(c.pos - mark)
			return result, nil
		}
		result = result.Add(sign * d)
	}
}
