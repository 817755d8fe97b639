package report

import (
	"strconv"
	"strings"

	"github.com/zalepa/plantio/chart"
)

// kerningGap is the TJ displacement, in thousandths of an em, above which
// two glyph runs are treated as separate words.
const kerningGap = 200

// textBlocks returns the text shown by each BT/ET block of a page content
// stream, in drawing order. Strings within one block are concatenated.
func textBlocks(stream []byte) []string {
	var blocks []string
	var cur strings.Builder
	var stack []token
	inText := false

	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			blocks = append(blocks, s)
		}
		cur.Reset()
	}

	for _, t := range tokenize(stream) {
		if t.kind != tokOperator {
			stack = append(stack, t)
			continue
		}
		switch t.value {
		case "BT":
			inText = true
		case "ET":
			flush()
			inText = false
		case "Tj", "'", "\"":
			if inText && len(stack) > 0 && stack[len(stack)-1].kind == tokString {
				cur.WriteString(chart.DecodePDFText(stack[len(stack)-1].raw))
			}
		case "TJ":
			if inText && len(stack) > 0 && stack[len(stack)-1].kind == tokArray {
				cur.WriteString(joinTJ(stack[len(stack)-1].children))
			}
		}
		stack = stack[:0]
	}
	flush()
	return blocks
}

// joinTJ concatenates the strings of a TJ array, inserting a space where the
// displacement between two runs is wide enough to be a word gap.
func joinTJ(children []token) string {
	var b strings.Builder
	gap := 0.0
	for _, c := range children {
		switch c.kind {
		case tokString:
			if b.Len() > 0 && -gap > kerningGap {
				b.WriteByte(' ')
			}
			b.WriteString(chart.DecodePDFText(c.raw))
			gap = 0
		case tokNumber:
			if v, err := strconv.ParseFloat(c.value, 64); err == nil {
				gap += v
			}
		}
	}
	return b.String()
}

type tokenKind int

const (
	tokString tokenKind = iota
	tokNumber
	tokOperator
	tokArray
)

type token struct {
	kind     tokenKind
	value    string
	raw      []byte // string operand bytes, undecoded
	children []token
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f' || ch == 0
}

func isDelim(ch byte) bool {
	return isSpace(ch) || ch == '(' || ch == ')' || ch == '[' || ch == ']' || ch == '/' || ch == '<' || ch == '>' || ch == '%'
}

func isNumberStart(ch byte) bool {
	return ch == '-' || ch == '+' || ch == '.' || (ch >= '0' && ch <= '9')
}

// tokenize splits a content stream into operands and operators. Names,
// dictionaries and hex strings are dropped.
func tokenize(s []byte) []token {
	var tokens []token
	for i, n := 0, len(s); i < n; {
		ch := s[i]
		switch {
		case isSpace(ch), ch == ']', ch == '>', ch == ')':
			i++
		case ch == '%':
			for i < n && s[i] != '\n' && s[i] != '\r' {
				i++
			}
		case ch == '(':
			raw, end := readString(s, i)
			tokens = append(tokens, token{kind: tokString, raw: raw})
			i = end
		case ch == '[':
			arr, end := readArray(s, i)
			tokens = append(tokens, arr)
			i = end
		case ch == '<':
			i = skipAngle(s, i)
		case ch == '/':
			i++
			for i < n && !isDelim(s[i]) {
				i++
			}
		case isNumberStart(ch):
			start := i
			i = readNumber(s, i)
			tokens = append(tokens, token{kind: tokNumber, value: string(s[start:i])})
		default:
			start := i
			for i < n && !isDelim(s[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokOperator, value: string(s[start:i])})
		}
	}
	return tokens
}

func readNumber(s []byte, i int) int {
	if s[i] == '-' || s[i] == '+' {
		i++
	}
	for i < len(s) && ((s[i] >= '0' && s[i] <= '9') || s[i] == '.') {
		i++
	}
	return i
}

// skipAngle skips a hex string or a << >> dictionary starting at s[pos].
func skipAngle(s []byte, pos int) int {
	depth := 0
	for i := pos; i < len(s); i++ {
		switch s[i] {
		case '<':
			depth++
		case '>':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return len(s)
}

// readString reads the literal string opening at s[pos] and returns its
// unescaped bytes and the index after the closing parenthesis.
func readString(s []byte, pos int) ([]byte, int) {
	var buf []byte
	depth := 1
	i := pos + 1
	for ; i < len(s) && depth > 0; i++ {
		ch := s[i]
		switch {
		case ch == '\\' && i+1 < len(s):
			i++
			switch next := s[i]; next {
			case 'n':
				buf = append(buf, '\n')
			case 'r':
				buf = append(buf, '\r')
			case 't':
				buf = append(buf, '\t')
			case 'b':
				buf = append(buf, '\b')
			case 'f':
				buf = append(buf, '\f')
			case '\r', '\n':
				// Line continuation.
			default:
				if next >= '0' && next <= '7' {
					end := i + 1
					for end < len(s) && end < i+3 && s[end] >= '0' && s[end] <= '7' {
						end++
					}
					v, _ := strconv.ParseUint(string(s[i:end]), 8, 8)
					buf = append(buf, byte(v))
					i = end - 1
				} else {
					buf = append(buf, next)
				}
			}
		case ch == '(':
			depth++
			buf = append(buf, ch)
		case ch == ')':
			depth--
			if depth > 0 {
				buf = append(buf, ch)
			}
		default:
			buf = append(buf, ch)
		}
	}
	return buf, i
}

// readArray reads the array opening at s[pos], keeping its strings and
// numbers.
func readArray(s []byte, pos int) (token, int) {
	arr := token{kind: tokArray}
	i := pos + 1
	for i < len(s) {
		ch := s[i]
		switch {
		case ch == ']':
			return arr, i + 1
		case ch == '(':
			raw, end := readString(s, i)
			arr.children = append(arr.children, token{kind: tokString, raw: raw})
			i = end
		case isNumberStart(ch):
			start := i
			i = readNumber(s, i)
			arr.children = append(arr.children, token{kind: tokNumber, value: string(s[start:i])})
		default:
			i++
		}
	}
	return arr, i
}
