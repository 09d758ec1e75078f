package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func rdr(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"line", "  hello world \n", "hello world"},
		{"last line without newline", "lastline", "lastline"},
		{"crlf", "alice\r\n", "alice"},
		{"empty answer", "\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetSimpleText(rdr(tt.input), "Name?", &out)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, "Name?\n> ", out.String())
		})
	}
}

func TestGetSimpleText_EOF(t *testing.T) {
	var out bytes.Buffer
	_, err := GetSimpleText(rdr(""), "Name?", &out)
	require.ErrorIs(t, err, io.EOF)
}

func TestGetMultiline(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"keeps paragraphs", "first para\n\nsecond para\n.\nnot read\n", "first para\n\nsecond para"},
		{"drops surrounding blank lines", "\n\nbody  \n\n.\n", "body"},
		{"crlf", "a\r\nb\r\n.\r\n", "a\nb"},
		{"eof ends text", "a\nb", "a\nb"},
		{"nothing entered", ".\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := GetMultiline(rdr(tt.input), "Enter note", &out)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Contains(t, out.String(), "Enter note")
		})
	}
}

func TestGetMultiline_LeavesRestOfInput(t *testing.T) {
	in := rdr("body\n.\nnext command\n")
	var out bytes.Buffer
	_, err := GetMultiline(in, "Enter note", &out)
	require.NoError(t, err)

	rest, err := GetSimpleText(in, "", &out)
	require.NoError(t, err)
	require.Equal(t, "next command", rest)
}

func TestGetPassword(t *testing.T) {
	old := readPassword
	t.Cleanup(func() { readPassword = old })

	readPassword = func(int) ([]byte, error) { return []byte("secret"), nil }
	var out bytes.Buffer
	pw, err := GetPassword(&out)
	require.NoError(t, err)
	require.Equal(t, []byte("secret"), pw)
	require.Equal(t, "Enter password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = GetPassword(&out)
	require.EqualError(t, err, "boom")
}
