// Copyright 2024-2025 NetCracker Technology Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package normalizer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"
)

// PythonDictLiteralToJSON parses the Python repr dialect produced by the validation API
// (single quoted keys, None/True/False/nan, numpy scalar wrappers) into an ordered payload.
// It never fails: unparseable input is logged and yields an empty payload.
func PythonDictLiteralToJSON(text string) *Payload {
	converted, err := ConvertPythonLiteral(text)
	if err != nil {
		log.Warnf("Failed to convert python literal %q: %v", text, err)
		return NewPayload()
	}
	payload, err := decodePayload([]byte(converted))
	if err != nil {
		log.Warnf("Failed to parse converted python literal %q (converted: %s): %v", text, converted, err)
		return NewPayload()
	}
	return payload
}

// ConvertPythonLiteral rewrites a Python literal into strict JSON text.
func ConvertPythonLiteral(text string) (string, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return "", fmt.Errorf("empty literal")
	}
	w := &literalWriter{tokens: tokens}
	if err := w.writeValue(false); err != nil {
		return "", err
	}
	if w.pos != len(w.tokens) {
		return "", fmt.Errorf("unexpected %s after end of literal", w.tokens[w.pos])
	}
	return w.out.String(), nil
}

type tokenKind int

const (
	tokenPunct tokenKind = iota
	tokenString
	tokenNumber
	tokenWord
)

type token struct {
	kind tokenKind
	// decoded value for strings, literal text otherwise
	text  string
	quote byte
}

func (t token) String() string {
	switch t.kind {
	case tokenString:
		return fmt.Sprintf("string %c%s%c", t.quote, t.text, t.quote)
	case tokenNumber:
		return "number " + t.text
	case tokenWord:
		return "word " + t.text
	}
	return "'" + t.text + "'"
}

func (t token) is(punct string) bool {
	return t.kind == tokenPunct && t.text == punct
}

func tokenize(text string) ([]token, error) {
	var tokens []token
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case strings.IndexByte("{}[](),:", c) >= 0:
			tokens = append(tokens, token{kind: tokenPunct, text: string(c)})
			i++
		case c == '\'' || c == '"':
			value, next, err := scanString(text, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokenString, text: value, quote: c})
			i = next
		case isDigit(c) || ((c == '-' || c == '+' || c == '.') && i+1 < len(text) && (isDigit(text[i+1]) || text[i+1] == '.')):
			end := scanNumber(text, i)
			number, err := normalizeNumber(text[i:end])
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{kind: tokenNumber, text: number})
			i = end
		case isWordStart(c) || (c == '-' && i+1 < len(text) && isWordStart(text[i+1])):
			end := i + 1
			for end < len(text) && isWordPart(text[end]) {
				end++
			}
			tokens = append(tokens, token{kind: tokenWord, text: text[i:end]})
			i = end
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", c, i)
		}
	}
	return tokens, nil
}

// scanString reads a quoted string starting at start and returns its decoded value
// together with the offset right after the closing quote.
func scanString(text string, start int) (string, int, error) {
	quote := text[start]
	var sb strings.Builder
	i := start + 1
	for i < len(text) {
		c := text[i]
		if c == quote {
			return sb.String(), i + 1, nil
		}
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(text) {
			break
		}
		esc := text[i+1]
		switch esc {
		case '\'', '"', '\\':
			sb.WriteByte(esc)
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'x', 'u', 'U':
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[esc]
			if i+2+width > len(text) {
				return "", 0, fmt.Errorf("truncated \\%c escape at offset %d", esc, i)
			}
			code, err := strconv.ParseUint(text[i+2:i+2+width], 16, 32)
			if err != nil || !utf8.ValidRune(rune(code)) {
				return "", 0, fmt.Errorf("invalid \\%c escape at offset %d", esc, i)
			}
			sb.WriteRune(rune(code))
			i += 2 + width
			continue
		default:
			// python keeps unknown escapes as is
			sb.WriteByte('\\')
			sb.WriteByte(esc)
		}
		i += 2
	}
	return "", 0, fmt.Errorf("unterminated string starting at offset %d", start)
}

func scanNumber(text string, start int) int {
	i := start
	if text[i] == '-' || text[i] == '+' {
		i++
	}
	for i < len(text) && (isDigit(text[i]) || text[i] == '.') {
		i++
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if j < len(text) && (text[j] == '-' || text[j] == '+') {
			j++
		}
		if j < len(text) && isDigit(text[j]) {
			for j < len(text) && isDigit(text[j]) {
				j++
			}
			i = j
		}
	}
	return i
}

var jsonNumber = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// normalizeNumber turns python spellings like "+1", ".5" or "3." into JSON numbers.
func normalizeNumber(literal string) (string, error) {
	n := strings.TrimPrefix(literal, "+")
	sign := ""
	if strings.HasPrefix(n, "-") {
		sign, n = "-", n[1:]
	}
	if strings.HasPrefix(n, ".") {
		n = "0" + n
	}
	mantissa, exponent := n, ""
	if idx := strings.IndexAny(n, "eE"); idx >= 0 {
		mantissa, exponent = n[:idx], n[idx:]
	}
	if strings.HasSuffix(mantissa, ".") {
		mantissa += "0"
	}
	result := sign + mantissa + exponent
	if !jsonNumber.MatchString(result) {
		return "", fmt.Errorf("invalid number %q", literal)
	}
	return result, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWordPart(c byte) bool {
	return isWordStart(c) || isDigit(c) || c == '.'
}

var wordLiterals = map[string]string{
	"None":      "null",
	"null":      "null",
	"True":      "true",
	"true":      "true",
	"False":     "false",
	"false":     "false",
	"nan":       "null",
	"NaN":       "null",
	"-nan":      "null",
	"inf":       "null",
	"-inf":      "null",
	"Infinity":  "null",
	"-Infinity": "null",
}

var scalarWrapper = regexp.MustCompile(`^(np|numpy)\.[A-Za-z_][A-Za-z0-9_]*$|^Decimal$`)

type literalWriter struct {
	tokens []token
	pos    int
	out    bytes.Buffer
}

func (w *literalWriter) peek() (token, bool) {
	if w.pos >= len(w.tokens) {
		return token{}, false
	}
	return w.tokens[w.pos], true
}

func (w *literalWriter) next() (token, error) {
	t, ok := w.peek()
	if !ok {
		return token{}, fmt.Errorf("unexpected end of literal")
	}
	w.pos++
	return t, nil
}

func (w *literalWriter) expect(punct string) error {
	t, err := w.next()
	if err != nil {
		return err
	}
	if !t.is(punct) {
		return fmt.Errorf("expected '%s', got %s", punct, t)
	}
	return nil
}

// writeValue emits one value. verbatim is set below lists that embed objects:
// their single quoted values are kept as strings instead of being coerced.
func (w *literalWriter) writeValue(verbatim bool) error {
	t, err := w.next()
	if err != nil {
		return err
	}
	switch t.kind {
	case tokenNumber:
		w.out.WriteString(t.text)
		return nil
	case tokenString:
		w.writeString(t, verbatim)
		return nil
	case tokenWord:
		return w.writeWord(t, verbatim)
	}
	switch t.text {
	case "{":
		return w.writeDict(verbatim)
	case "[":
		return w.writeSequence("]", verbatim || w.sequenceHasObject())
	case "(":
		return w.writeSequence(")", verbatim || w.sequenceHasObject())
	}
	return fmt.Errorf("unexpected %s", t)
}

func (w *literalWriter) writeString(t token, verbatim bool) {
	if t.quote == '\'' && !verbatim {
		if literal, ok := scalarPassthrough(t.text); ok {
			w.out.WriteString(literal)
			return
		}
	}
	w.out.WriteString(quoteJSON(t.text))
}

// scalarPassthrough reports how a single quoted scalar is emitted unquoted:
// numeric looking text, true/false/null and nan.
func scalarPassthrough(value string) (string, bool) {
	switch value {
	case "true", "false", "null":
		return value, true
	case "nan":
		return "null", true
	}
	if jsonNumber.MatchString(value) {
		return value, true
	}
	return "", false
}

func (w *literalWriter) writeWord(t token, verbatim bool) error {
	if next, ok := w.peek(); ok && next.is("(") {
		if !scalarWrapper.MatchString(t.text) {
			return fmt.Errorf("unsupported call %s(...)", t.text)
		}
		w.pos++
		if err := w.writeValue(verbatim); err != nil {
			return err
		}
		return w.expect(")")
	}
	if literal, ok := wordLiterals[t.text]; ok {
		w.out.WriteString(literal)
		return nil
	}
	w.out.WriteString(quoteJSON(t.text))
	return nil
}

func (w *literalWriter) writeDict(verbatim bool) error {
	if t, ok := w.peek(); ok && t.is("}") {
		w.pos++
		w.out.WriteString("{}")
		return nil
	}
	// python sets share the brace; a dict is recognised by the colon after the first key
	if w.pos+1 < len(w.tokens) && !w.tokens[w.pos+1].is(":") {
		return w.writeSequence("}", verbatim)
	}
	w.out.WriteByte('{')
	first := true
	for {
		t, ok := w.peek()
		if !ok {
			return fmt.Errorf("unterminated dict")
		}
		if t.is("}") {
			w.pos++
			break
		}
		if !first {
			if err := w.expect(","); err != nil {
				return err
			}
			if t, ok := w.peek(); ok && t.is("}") {
				w.pos++
				break
			}
			w.out.WriteByte(',')
		}
		first = false
		if err := w.writeKey(); err != nil {
			return err
		}
		if err := w.expect(":"); err != nil {
			return err
		}
		w.out.WriteByte(':')
		if err := w.writeValue(verbatim); err != nil {
			return err
		}
	}
	w.out.WriteByte('}')
	return nil
}

func (w *literalWriter) writeKey() error {
	t, err := w.next()
	if err != nil {
		return err
	}
	switch t.kind {
	case tokenString, tokenNumber:
		w.out.WriteString(quoteJSON(t.text))
	case tokenWord:
		if literal, ok := wordLiterals[t.text]; ok {
			w.out.WriteString(quoteJSON(literal))
		} else {
			w.out.WriteString(quoteJSON(t.text))
		}
	default:
		return fmt.Errorf("unsupported dict key %s", t)
	}
	return nil
}

// writeSequence emits a list, tuple or set body as a JSON array; the opening token is consumed.
func (w *literalWriter) writeSequence(closing string, verbatim bool) error {
	w.out.WriteByte('[')
	first := true
	for {
		t, ok := w.peek()
		if !ok {
			return fmt.Errorf("unterminated sequence, expected '%s'", closing)
		}
		if t.is(closing) {
			w.pos++
			break
		}
		if !first {
			if err := w.expect(","); err != nil {
				return err
			}
			if t, ok := w.peek(); ok && t.is(closing) {
				w.pos++
				break
			}
			w.out.WriteByte(',')
		}
		first = false
		if err := w.writeValue(verbatim); err != nil {
			return err
		}
	}
	w.out.WriteByte(']')
	return nil
}

// sequenceHasObject looks ahead from the current position to the end of the open
// sequence and reports whether an object opens anywhere inside.
func (w *literalWriter) sequenceHasObject() bool {
	depth := 0
	for i := w.pos; i < len(w.tokens); i++ {
		t := w.tokens[i]
		if t.kind != tokenPunct {
			continue
		}
		switch t.text {
		case "{":
			return true
		case "[", "(":
			depth++
		case "]", ")":
			if depth == 0 {
				return false
			}
			depth--
		}
	}
	return false
}

func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
