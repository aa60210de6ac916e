package transcode

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestToJSON(t *testing.T) {
	var table = []struct {
		name   string
		input  string
		output string
	}{
		{"integer", "i42e", "42"},
		{"zero", "i0e", "0"},
		{"negative integer", "i-17e", "-17"},
		{"string", "4:spam", `"spam"`},
		{"empty string", "0:", `""`},
		{"string with space and punctuation", "12:hello, wor!d", `"hello, wor!d"`},
		{"string with quote", "3:a\"b", `"a\"b"`},
		{"string with backslash", "3:a\\b", `"a\\b"`},
		{"control byte", "3:a\x01b", `"a\u0001b"`},
		{"newline", "1:\n", `"\u000a"`},
		{"delete byte", "1:\x7f", `"\u007f"`},
		{"high byte", "1:\x80", `"\u0080"`},
		{"highest byte", "1:\xff", `"\u00ff"`},
		{"empty list", "le", "[]"},
		{"list", "l4:spam4:eggse", `["spam","eggs"]`},
		{"list of one", "li9ee", "[9]"},
		{"nested lists", "lli1eeli2eee", "[[1],[2]]"},
		{"empty dictionary", "de", "{}"},
		{"dictionary", "d3:cow3:moo4:spam4:eggse", `{"cow":"moo","spam":"eggs"}`},
		{"dictionary key order preserved", "d1:b1:21:a1:1e", `{"b":"2","a":"1"}`},
		{"dictionary with mixed values", "d3:intli5ee3:str1:xe", `{"int":[5],"str":"x"}`},
		{"dictionary of dictionaries", "d1:ad1:bdeee", `{"a":{"b":{}}}`},
		{"integer dictionary key", "di1ei2ee", "{1:2}"},
	}

	for _, tt := range table {
		t.Run(tt.name, func(t *testing.T) {
			outputBytes, err := ToJSON([]byte(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if string(outputBytes) != tt.output {
				t.Errorf("unexpected output: %s instead of %s", outputBytes, tt.output)
			}
		})
	}
}

func TestToJSONErrors(t *testing.T) {
	var table = []struct {
		name  string
		input string
		err   error
	}{
		{"empty input", "", ErrUnexpectedEOF},
		{"truncated integer", "i42", ErrUnexpectedEOF},
		{"truncated string payload", "4:sp", ErrUnexpectedEOF},
		{"truncated length prefix", "12", ErrUnexpectedEOF},
		{"truncated list", "l4:spam", ErrUnexpectedEOF},
		{"truncated dictionary", "d3:cow3:moo", ErrUnexpectedEOF},
		{"truncated nested value", "ld3:cow", ErrUnexpectedEOF},
		{"non-digit in length prefix", "4x:spam", ErrInvalidLengthPrefix},
		{"empty length prefix", ":x", ErrInvalidLengthPrefix},
		{"oversized length prefix", strings.Repeat("9", 21) + ":x", ErrInvalidLengthPrefix},
		{"overflowing length prefix", strings.Repeat("9", 20) + ":x", ErrInvalidLengthPrefix},
	}

	for _, tt := range table {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ToJSON([]byte(tt.input))
			if !errors.Is(err, tt.err) {
				t.Errorf("unexpected error: %v instead of %v", err, tt.err)
			}
		})
	}
}

func TestTranscodeStopsAfterOneValue(t *testing.T) {
	input := strings.NewReader("i42ei43e")
	var out bytes.Buffer

	transcoder := New(input, &out)
	if err := transcoder.Transcode(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if out.String() != "42" {
		t.Errorf("unexpected output: %s instead of 42", out.String())
	}
}

func TestTranscodeDeepNesting(t *testing.T) {
	const depth = 64
	input := strings.Repeat("l", depth) + "i1e" + strings.Repeat("e", depth)
	expected := strings.Repeat("[", depth) + "1" + strings.Repeat("]", depth)

	outputBytes, err := ToJSON([]byte(input))
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if string(outputBytes) != expected {
		t.Errorf("unexpected output: %s instead of %s", outputBytes, expected)
	}
}

func TestStrictKeys(t *testing.T) {
	var table = []struct {
		name  string
		input string
		err   error
	}{
		{"string keys pass", "d3:cow3:mooe", nil},
		{"integer key fails", "di1e1:ae", ErrKeyNotString},
		{"list key fails", "dle1:ae", ErrKeyNotString},
		{"dictionary key fails", "dde1:ae", ErrKeyNotString},
	}

	for _, tt := range table {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			transcoder := NewWithOptions(strings.NewReader(tt.input), &out, Options{StrictKeys: true})
			err := transcoder.Transcode()
			if !errors.Is(err, tt.err) {
				t.Errorf("unexpected error: %v instead of %v", err, tt.err)
			}
		})
	}
}

func TestMaxLengthDigitsOption(t *testing.T) {
	var out bytes.Buffer
	transcoder := NewWithOptions(strings.NewReader("123:x"), &out, Options{MaxLengthDigits: 2})
	if err := transcoder.Transcode(); !errors.Is(err, ErrInvalidLengthPrefix) {
		t.Errorf("unexpected error: %v instead of %v", err, ErrInvalidLengthPrefix)
	}

	out.Reset()
	transcoder = NewWithOptions(strings.NewReader("12:abcdefghijkl"), &out, Options{MaxLengthDigits: 2})
	if err := transcoder.Transcode(); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if out.String() != `"abcdefghijkl"` {
		t.Errorf("unexpected output: %s", out.String())
	}
}
