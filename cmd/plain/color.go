package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"

	"github.com/fatih/color"
)

var (
	keyColor = color.New(color.FgCyan)
	strColor = color.New(color.FgGreen)
	numColor = color.New(color.FgYellow)
	litColor = color.New(color.FgMagenta)
)

// colorizeJSON re-renders encoded json with per-token color. Invalid
// input is returned unchanged.
func colorizeJSON(data []byte) []byte {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out bytes.Buffer
	var keyNext []bool
	last := int64(0)
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return data
		}
		// copy everything the decoder skipped (punctuation, space)
		off := dec.InputOffset()
		raw := data[last:off]
		switch x := tok.(type) {
		case json.Delim:
			out.Write(raw)
			switch x {
			case '{':
				keyNext = append(keyNext, true)
			case '}':
				keyNext = keyNext[:len(keyNext)-1]
			case '[':
				keyNext = append(keyNext, false)
			case ']':
				keyNext = keyNext[:len(keyNext)-1]
			}
		case string:
			i := bytes.IndexByte(raw, '"')
			out.Write(raw[:i])
			if len(keyNext) > 0 && keyNext[len(keyNext)-1] && !followsColon(data, last, i) {
				out.WriteString(keyColor.Sprint(string(raw[i:])))
			} else {
				out.WriteString(strColor.Sprint(string(raw[i:])))
			}
		case json.Number:
			i := len(raw) - len(x.String())
			out.Write(raw[:i])
			out.WriteString(numColor.Sprint(string(raw[i:])))
		case bool, nil:
			i := trailingLiteral(raw)
			out.Write(raw[:i])
			out.WriteString(litColor.Sprint(string(raw[i:])))
		}
		last = off
	}
	out.Write(data[last:])
	return out.Bytes()
}

// followsColon reports whether the token starting at base+i is a value
// position, i.e. the nearest preceding non-space byte is a colon.
func followsColon(data []byte, base int64, i int) bool {
	for j := int(base) + i - 1; j >= 0; j-- {
		switch data[j] {
		case ' ', '\t', '\n', '\r':
			continue
		case ':':
			return true
		default:
			return false
		}
	}
	return false
}

// trailingLiteral finds where the literal (true/false/null) starts at
// the end of raw.
func trailingLiteral(raw []byte) int {
	i := len(raw)
	for i > 0 {
		c := raw[i-1]
		if c >= 'a' && c <= 'z' {
			i--
			continue
		}
		break
	}
	return i
}
