// Package pattern recovers recording timestamps from camera filenames.
package pattern

import (
	"errors"
	"path/filepath"
	"strings"

	"clipdate/internal/domain"
)

var errNoShape = errors.New("shape does not match")

type Match struct {
	Rule      string
	Timestamp domain.Timestamp
}

// Attempt records how one rule fared against a filename.
type Attempt struct {
	Rule    string
	Matched bool
	Err     error
}

// Parser tries its rules in order. The first rule whose shape matches and
// whose timestamp validates wins; a rule that matches structurally but
// fails validation hands over to the next one.
type Parser struct {
	rules []Rule
}

func New(rules ...Rule) *Parser {
	return &Parser{rules: rules}
}

func Default() *Parser {
	return New(DefaultRules()...)
}

func (p *Parser) RuleNames() []string {
	names := make([]string, 0, len(p.rules))
	for _, r := range p.rules {
		names = append(names, r.Name())
	}
	return names
}

// Parse returns false when no rule both matches and validates.
func (p *Parser) Parse(filename string) (Match, bool) {
	stem := stemOf(filename)
	for _, rule := range p.rules {
		ts, ok := rule.Extract(stem)
		if !ok {
			continue
		}
		if ts.Validate() != nil {
			continue
		}
		return Match{Rule: rule.Name(), Timestamp: ts}, true
	}
	return Match{}, false
}

// Explain runs every rule against filename and reports each result,
// stopping after the first rule that would win.
func (p *Parser) Explain(filename string) []Attempt {
	stem := stemOf(filename)
	attempts := make([]Attempt, 0, len(p.rules))
	for _, rule := range p.rules {
		ts, ok := rule.Extract(stem)
		if !ok {
			attempts = append(attempts, Attempt{Rule: rule.Name(), Err: errNoShape})
			continue
		}
		err := ts.Validate()
		attempts = append(attempts, Attempt{Rule: rule.Name(), Matched: true, Err: err})
		if err == nil {
			break
		}
	}
	return attempts
}

func stemOf(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, filepath.Ext(name))
}
