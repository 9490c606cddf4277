package facade

import (
	"fmt"
	"strings"

	"github.com/asaidimu/liteq/pkg/core"
)

// substitute turns (query, params) into the statement submitted to the
// engine. The text is scanned left to right; every `?` is a
// substitution point, in the order encountered, and is replaced with
// the escaped form of the matching parameter wrapped in single quotes.
// All other bytes are copied verbatim.
//
// A literal `?` inside a string constant is NOT distinguished from a
// placeholder; callers must keep the character out of raw literal
// text. Substitution is skipped entirely when params is nil.
func (f *Facade) substitute(query string, params core.Params) (string, *core.QueryError) {
	if params == nil {
		return query, nil
	}

	var sb strings.Builder
	sb.Grow(len(query))

	next := 0
	for i := 0; i < len(query); i++ {
		c := query[i]
		if c != '?' {
			sb.WriteByte(c)
			continue
		}
		if next >= len(params) {
			return "", &core.QueryError{
				Kind:   core.KindUsage,
				Query:  query,
				Detail: fmt.Sprintf("placeholder %d has no parameter (%d supplied)", next+1, len(params)),
			}
		}
		sb.WriteByte('\'')
		sb.WriteString(f.engine.Escape(params[next]))
		sb.WriteByte('\'')
		next++
	}
	// Surplus parameters are left unused, matching the positional
	// contract's unchecked length on that side.
	return sb.String(), nil
}
