package css

import (
	"bytes"
	"errors"
	"io"
	"maps"
	"strconv"
	"strings"
	"unicode"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses CSS stylesheets into structured rules.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. Unsupported selectors are dropped
// and reported in Stylesheet.Warnings, unknown @-rules are skipped. Optional
// source names parsed data in debug log.
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := &Stylesheet{Items: []StylesheetItem{}, Warnings: []string{}}

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	parser := css.NewParser(parse.NewInput(bytes.NewReader(data)), false)
	for {
		gt, _, data := parser.Next()
		if gt == css.ErrorGrammar {
			if err := parser.Err(); err != nil && !errors.Is(err, io.EOF) {
				p.log.Debug("CSS parse error", zap.Error(err))
			}
			return sheet
		}
		sheet.Items = append(sheet.Items, p.topLevel(parser, gt, string(data), sheet)...)
	}
}

// topLevel handles single top level grammar unit.
func (p *Parser) topLevel(parser *css.Parser, gt css.GrammarType, data string, sheet *Stylesheet) []StylesheetItem {
	switch gt {
	case css.BeginAtRuleGrammar:
		switch data {
		case "@media":
			mq := p.parseMediaQueryFromTokens(parser.Values())
			rules := p.parseMediaBlockRules(parser, sheet)
			p.log.Debug("Parsed @media block", zap.String("query", mq.Raw), zap.Int("rules", len(rules)))
			return []StylesheetItem{{MediaBlock: &MediaBlock{Query: mq, Rules: rules}}}
		case "@font-face":
			ff := p.parseFontFace(parser)
			return []StylesheetItem{{FontFace: &ff}}
		}
		p.skipAtRuleBlock(parser)
		p.log.Debug("Skipping @-rule", zap.String("rule", data))

	case css.AtRuleGrammar:
		if data != "@import" {
			p.log.Debug("Skipping @-rule", zap.String("rule", data))
			break
		}
		if url := extractImportURL(parser.Values()); url != "" {
			p.log.Debug("Parsed @import", zap.String("url", url))
			return []StylesheetItem{{Import: &url}}
		}

	case css.BeginRulesetGrammar:
		selectors := parseSelectors([]byte(data), parser.Values())
		return p.rulesFor(selectors, p.parseDeclarations(parser), sheet)
	}
	return nil
}

// rulesFor creates a rule per supported selector, each with its own copy of
// properties.
func (p *Parser) rulesFor(selectors []string, props map[string]Value, sheet *Stylesheet) []StylesheetItem {
	var items []StylesheetItem
	for _, selStr := range selectors {
		sel, warn := ParseSelector(selStr)
		if warn != "" {
			sheet.Warnings = append(sheet.Warnings, warn)
			p.log.Debug("Skipping selector", zap.String("selector", selStr), zap.String("reason", warn))
			continue
		}
		rule := Rule{Selector: sel, Properties: maps.Clone(props)}
		items = append(items, StylesheetItem{Rule: &rule})
	}
	return items
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

// parseSelectors extracts selector strings from token data.
func parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	// Split by comma for grouped selectors
	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations parses property declarations until EndRulesetGrammar.
func (p *Parser) parseDeclarations(parser *css.Parser) map[string]Value {
	props := make(map[string]Value)

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return props

		case css.DeclarationGrammar:
			propName := strings.ToLower(string(data))
			values := parser.Values()
			if len(values) > 0 {
				props[propName] = valueFromTokens(values)
			}

		case css.CustomPropertyGrammar:
			// CSS custom properties (--var) - skip for now
			continue
		}
	}
}

// ParseValue parses a single declaration value such as "12px",
// "#fff !important" or "1px solid red".
func ParseValue(raw string) Value {
	lexer := css.NewLexer(parse.NewInputString(raw))
	var tokens []css.Token
	for {
		tt, data := lexer.Next()
		if tt == css.ErrorToken {
			break
		}
		tokens = append(tokens, css.Token{TokenType: tt, Data: bytes.Clone(data)})
	}
	return valueFromTokens(tokens)
}

// valueFromTokens converts CSS tokens to a Value.
func valueFromTokens(tokens []css.Token) Value {
	tokens, important := stripImportant(tokens)
	if len(tokens) == 0 {
		return Value{Important: important}
	}

	raw := joinTokens(tokens, " ")
	val := Value{Raw: raw, Important: important}

	// Handle single token cases
	if len(tokens) == 1 {
		t := tokens[0]
		switch t.TokenType {
		case css.DimensionToken:
			val.Value, val.Unit = parseDimension(string(t.Data))
		case css.PercentageToken:
			val.Value, _ = strconv.ParseFloat(strings.TrimSuffix(string(t.Data), "%"), 64)
			val.Unit = "%"
		case css.NumberToken:
			val.Value, _ = strconv.ParseFloat(string(t.Data), 64)
		case css.IdentToken:
			val.Keyword = strings.ToLower(string(t.Data))
		case css.StringToken:
			val.Keyword = unquote(string(t.Data))
		case css.HashToken:
			// Color value
			val.Keyword = string(t.Data)
		default:
			val.Keyword = raw
		}
		return val
	}

	// Functions (rgb(), url(), calc()) and multi-value properties are kept
	// as keyword with raw value
	val.Keyword = raw
	return val
}

// joinTokens renders tokens as text, runs of whitespace become single
// separator.
func joinTokens(tokens []css.Token, sep string) string {
	var sb strings.Builder
	pending := false
	for _, t := range tokens {
		if t.TokenType == css.WhitespaceToken {
			pending = sb.Len() > 0
			continue
		}
		if pending {
			sb.WriteString(sep)
			pending = false
		}
		sb.Write(t.Data)
	}
	return sb.String()
}

// stripImportant removes surrounding whitespace and trailing "!important"
// tokens.
func stripImportant(tokens []css.Token) ([]css.Token, bool) {
	tokens = trimWhitespace(tokens)
	n := len(tokens)
	if n >= 2 && tokens[n-1].TokenType == css.IdentToken && strings.EqualFold(string(tokens[n-1].Data), "important") {
		// allow "! important"
		i := n - 2
		for i >= 0 && tokens[i].TokenType == css.WhitespaceToken {
			i--
		}
		if i >= 0 && tokens[i].TokenType == css.DelimToken && string(tokens[i].Data) == "!" {
			return trimWhitespace(tokens[:i]), true
		}
	}
	return tokens, false
}

func trimWhitespace(tokens []css.Token) []css.Token {
	for len(tokens) > 0 && tokens[0].TokenType == css.WhitespaceToken {
		tokens = tokens[1:]
	}
	for len(tokens) > 0 && tokens[len(tokens)-1].TokenType == css.WhitespaceToken {
		tokens = tokens[:len(tokens)-1]
	}
	return tokens
}

// parseDimension splits dimension token into number and lowercase unit.
func parseDimension(s string) (float64, string) {
	end := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.' && r != '-' && r != '+'
	})
	if end < 0 {
		end = len(s)
	}
	if end == 0 {
		return 0, ""
	}
	num, _ := strconv.ParseFloat(s[:end], 64)
	return num, strings.ToLower(s[end:])
}

// ParseSelector parses a selector string into a Selector. Non empty second
// result explains why selector is not supported.
func ParseSelector(selStr string) (Selector, string) {
	selStr = strings.TrimSpace(selStr)
	sel := Selector{Raw: selStr}

	if strings.ContainsAny(selStr, "+~>") {
		return sel, "unsupported combinator selector: " + selStr
	}
	if strings.Contains(selStr, "[") {
		return sel, "unsupported attribute selector: " + selStr
	}

	parts := strings.Fields(selStr)
	if len(parts) == 0 {
		return sel, "empty selector"
	}

	main, warn := parseSimpleSelector(parts[len(parts)-1])
	if warn != "" {
		return sel, warn
	}
	main.Raw = selStr

	// For simplicity all ancestor parts are folded into a chain of single
	// ancestors, ".form .field input" -> input <- .field <- .form
	current := &main
	for i := len(parts) - 2; i >= 0; i-- {
		anc, warn := parseSimpleSelector(parts[i])
		if warn != "" {
			return sel, warn
		}
		current.Ancestor = &anc
		current = current.Ancestor
	}
	return main, ""
}

// parseSimpleSelector parses a simple selector (element, class, or
// element.class with optional pseudo-class and pseudo-element).
func parseSimpleSelector(selStr string) (Selector, string) {
	sel := Selector{Raw: selStr}

	remaining := selStr
	if before, pseudo, found := strings.Cut(remaining, "::"); found {
		remaining = before
		switch strings.ToLower(pseudo) {
		case "before":
			sel.Pseudo = PseudoBefore
		case "after":
			sel.Pseudo = PseudoAfter
		case "placeholder":
			sel.Pseudo = PseudoPlaceholder
		default:
			return sel, "unsupported pseudo-element: " + selStr
		}
	}
	if before, pseudo, found := strings.Cut(remaining, ":"); found {
		remaining = before
		switch pseudo = strings.ToLower(pseudo); pseudo {
		case "before":
			sel.Pseudo = PseudoBefore
		case "after":
			sel.Pseudo = PseudoAfter
		case "hover", "focus", "active", "disabled", "checked", "focus-within":
			sel.PseudoClass = pseudo
		default:
			return sel, "unsupported pseudo-class: " + selStr
		}
	}

	if remaining == "" {
		return sel, "universal selector is not supported: " + selStr
	}

	if element, class, found := strings.Cut(remaining, "."); found {
		sel.Element = element
		sel.Class = class
	} else {
		sel.Element = remaining
	}
	if !sel.IsSimple() {
		return sel, "empty selector: " + selStr
	}
	return sel, ""
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// parseFontFace parses an @font-face block, unknown descriptors are ignored.
func (p *Parser) parseFontFace(parser *css.Parser) FontFace {
	var ff FontFace
	for {
		gt, _, data := parser.Next()
		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return ff
		case css.DeclarationGrammar:
			val := joinTokens(parser.Values(), " ")
			switch strings.ToLower(string(data)) {
			case "font-family":
				ff.Family = unquote(val)
			case "src":
				ff.Src = val
			case "font-style":
				ff.Style = val
			case "font-weight":
				ff.Weight = val
			}
		}
	}
}

// parseMediaQueryFromTokens parses a media query from CSS tokens.
// Format: [not] [type] [and] [(feature: value)]...
func (p *Parser) parseMediaQueryFromTokens(tokens []css.Token) MediaQuery {
	mq := MediaQuery{}

	var rawParts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			rawParts = append(rawParts, string(t.Data))
			if t.TokenType == css.ColonToken {
				rawParts = append(rawParts, " ")
			}
		} else if len(rawParts) > 0 {
			rawParts = append(rawParts, " ")
		}
	}
	mq.Raw = strings.Join(strings.Fields(strings.Join(rawParts, "")), " ")

	depth := 0
	var feature *MediaFeature
	for _, t := range tokens {
		switch t.TokenType {
		case css.LeftParenthesisToken:
			depth++
			feature = &MediaFeature{}
		case css.RightParenthesisToken:
			depth--
			if feature != nil && feature.Name != "" {
				mq.Features = append(mq.Features, *feature)
			}
			feature = nil
		case css.IdentToken:
			ident := strings.ToLower(string(t.Data))
			switch {
			case depth > 0 && feature != nil && feature.Name == "":
				feature.Name = ident
			case depth == 0 && ident == "not":
				mq.Negated = true
			case depth == 0 && ident != "and" && ident != "only" && mq.Type == "":
				mq.Type = ident
			}
		case css.DimensionToken, css.NumberToken:
			if feature != nil {
				feature.Value, _ = parseDimension(string(t.Data))
			}
		}
	}
	return mq
}

// parseMediaBlockRules parses rules inside an @media block and returns them.
func (p *Parser) parseMediaBlockRules(parser *css.Parser, sheet *Stylesheet) []Rule {
	var rules []Rule

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndAtRuleGrammar:
			return rules

		case css.BeginRulesetGrammar:
			selectors := parseSelectors(data, parser.Values())
			props := p.parseDeclarations(parser)
			for _, item := range p.rulesFor(selectors, props, sheet) {
				rules = append(rules, *item.Rule)
			}
		}
	}
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
