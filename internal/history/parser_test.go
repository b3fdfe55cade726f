package history

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	huierrors "github.com/chazuruo/hui/internal/errors"
)

func texts(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Text
	}
	return out
}

func TestParseBash_RoundTrip(t *testing.T) {
	lines := []string{
		"git status",
		"   ls -la   ",
		"",
		"\t",
		"#1616420000",
		"echo 'a  b'",
		"kubectl get pods -n kube-system",
	}
	input := strings.Join(lines, "\n") + "\n"

	entries, err := ParseBytes(ShellBash, []byte(input))
	require.NoError(t, err)

	var want []string
	for _, l := range lines {
		if s := strings.TrimSpace(l); s != "" {
			want = append(want, s)
		}
	}
	assert.Equal(t, want, texts(entries))

	for i, e := range entries {
		assert.Equal(t, i, e.Sequence)
		assert.Nil(t, e.Timestamp)
		assert.Nil(t, e.Duration)
	}
}

func TestParseBash_Continuation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "single continuation",
			input: "echo one \\\ntwo\nls\n",
			want:  []string{"echo one \ntwo", "ls"},
		},
		{
			name:  "chained continuation",
			input: "a\\\nb\\\nc\n",
			want:  []string{"a\nb\nc"},
		},
		{
			name:  "escaped backslash is not a marker",
			input: "echo \\\\\nls\n",
			want:  []string{`echo \\`, "ls"},
		},
		{
			name:  "three backslashes continue",
			input: "echo \\\\\\\nx\n",
			want:  []string{"echo \\\\\nx"},
		},
		{
			name:  "open continuation at end of input",
			input: "echo tail \\",
			want:  []string{"echo tail"},
		},
		{
			name:  "escaped trailing space is kept",
			input: "echo foo \\ \nls\n",
			want:  []string{"echo foo \\ ", "ls"},
		},
		{
			name:  "escaped trailing tab after three backslashes",
			input: "echo \\\\\\\t\n",
			want:  []string{"echo \\\\\\\t"},
		},
		{
			name:  "unescaped trailing space is trimmed",
			input: "echo \\\\ \n",
			want:  []string{`echo \\`},
		},
		{
			name:  "no trailing newline",
			input: "pwd",
			want:  []string{"pwd"},
		},
		{
			name:  "crlf line endings",
			input: "ls\r\ncat a \\\r\nb\r\n",
			want:  []string{"ls", "cat a \nb"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := ParseBytes(ShellBash, []byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, texts(entries))
			for _, e := range entries {
				_, more := cutContinuation(e.Text)
				assert.False(t, more, "entry %q ends with a continuation marker", e.Text)
			}
		})
	}
}

func TestParseZsh_ContinuationJoin(t *testing.T) {
	entries, err := ParseBytes(ShellZsh, []byte(": 1690000000:0;echo \\\nhello"))
	require.NoError(t, err)
	require.Len(t, entries, 1)

	e := entries[0]
	assert.Equal(t, "echo \nhello", e.Text)
	require.NotNil(t, e.Timestamp)
	assert.Equal(t, int64(1690000000), *e.Timestamp)
	require.NotNil(t, e.Duration)
	assert.Equal(t, int64(0), *e.Duration)
}

func TestParseZsh_EscapedTrailingSpace(t *testing.T) {
	entries, err := ParseBytes(ShellZsh, []byte(": 1690000000:0;echo foo \\ \n: 1690000001:0;ls\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"echo foo \\ ", "ls"}, texts(entries))
	for _, e := range entries {
		_, more := cutContinuation(e.Text)
		assert.False(t, more, "entry %q ends with a continuation marker", e.Text)
	}
}

func TestTrimCommand(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  ls -la  ", "ls -la"},
		{"echo foo \\ ", "echo foo \\ "},
		{"echo foo \\  \t", "echo foo \\ "},
		{"echo \\\\ ", `echo \\`},
		{"echo \\\\\\\t", "echo \\\\\\\t"},
		{"\\ ", "\\ "},
		{"   ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, trimCommand(tt.in), "input %q", tt.in)
	}
}

func TestParseZsh_Records(t *testing.T) {
	input := strings.Join([]string{
		": 1616420000:0;ls -la",
		": 1616420100:3;git commit -m \"first\\",
		"second\\",
		"third\"",
		"plain line without metadata",
		":1616420200:12;make test",
		"",
	}, "\n")

	entries, err := ParseBytes(ShellZsh, []byte(input))
	require.NoError(t, err)
	require.Len(t, entries, 4)

	assert.Equal(t, "ls -la", entries[0].Text)
	assert.Equal(t, int64(1616420000), *entries[0].Timestamp)

	assert.Equal(t, "git commit -m \"first\nsecond\nthird\"", entries[1].Text)
	assert.Equal(t, int64(3), *entries[1].Duration)

	assert.Equal(t, "plain line without metadata", entries[2].Text)
	assert.Nil(t, entries[2].Timestamp)

	assert.Equal(t, "make test", entries[3].Text)
	assert.Equal(t, int64(12), *entries[3].Duration)

	for i, e := range entries {
		assert.Equal(t, i, e.Sequence)
	}
}

func TestParseZsh_MalformedDegrades(t *testing.T) {
	p, err := NewParser(ShellZsh)
	require.NoError(t, err)

	input := ": abc:0;ls\n: 1616420000:-4;pwd\n: 1616420000:1;whoami\n"
	entries, stats, err := p.ParseWithStats(Source{Name: "zsh", Reader: strings.NewReader(input)})
	require.NoError(t, err)

	assert.Equal(t, []string{": abc:0;ls", ": 1616420000:-4;pwd", "whoami"}, texts(entries))
	assert.Nil(t, entries[0].Timestamp)
	assert.Nil(t, entries[1].Timestamp)
	assert.NotNil(t, entries[2].Timestamp)

	assert.Equal(t, 2, stats.Malformed)
	assert.Equal(t, 3, stats.Lines)
	assert.Equal(t, 3, stats.Entries)
	assert.Equal(t, 1, stats.Sources)
}

func TestParseZsh_Unmetafy(t *testing.T) {
	// "—" is E2 80 94; zsh stores 0x94 as 0x83 0xB4.
	raw := []byte(": 1700000000:0;echo \xe2\x80\x83\xb4\n")
	entries, err := ParseBytes(ShellZsh, raw)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "echo —", entries[0].Text)
}

func TestUnmetafy(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{"no meta", []byte("abc"), []byte("abc")},
		{"meta pair", []byte{'a', zshMeta, 0xb4, 'b'}, []byte{'a', 0x94, 'b'}},
		{"trailing meta dropped", []byte{'a', zshMeta}, []byte{'a'}},
		{"empty", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]byte(nil), tt.in...)
			assert.Equal(t, tt.want, unmetafy(in))
		})
	}
}

func TestParse_InvalidUTF8(t *testing.T) {
	entries, err := ParseBytes(ShellBash, []byte("echo \xff\xfe done\n"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "echo �� done", entries[0].Text)
}

func TestParse_MultipleSources(t *testing.T) {
	entries, err := ParseBytes(ShellBash,
		[]byte("a\nb \\"),
		[]byte("c\n"),
		nil,
		[]byte("d\n"),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d"}, texts(entries))
	for i, e := range entries {
		assert.Equal(t, i, e.Sequence)
	}
}

func TestParse_EmptyInput(t *testing.T) {
	entries, err := ParseBytes(ShellZsh)
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = ParseBytes(ShellBash, []byte("\n\n   \n"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestParse_LongLine(t *testing.T) {
	long := strings.Repeat("x", 3<<20)
	entries, err := ParseBytes(ShellBash, []byte("ls\n"+long+"\npwd\n"))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, long, entries[1].Text)
}

func TestParse_ReadFailure(t *testing.T) {
	p, err := NewParser(ShellBash)
	require.NoError(t, err)

	boom := errors.New("disk on fire")
	_, err = p.Parse(
		Source{Name: "ok", Reader: bytes.NewReader([]byte("ls\n"))},
		Source{Name: "/bad/history", Reader: iotest.ErrReader(boom)},
	)
	require.Error(t, err)
	assert.True(t, huierrors.IsSourceUnavailable(err))
	assert.ErrorIs(t, err, boom)

	se, ok := huierrors.AsSourceError(err)
	require.True(t, ok)
	assert.Equal(t, "/bad/history", se.Path)
}

func TestNewParser_InvalidKind(t *testing.T) {
	_, err := NewParser(ShellKind(42))
	require.Error(t, err)
	assert.True(t, huierrors.IsInvalid(err))
}

func TestParseShellKind(t *testing.T) {
	tests := []struct {
		in      string
		want    ShellKind
		wantErr bool
	}{
		{"bash", ShellBash, false},
		{"ZSH", ShellZsh, false},
		{"/usr/bin/zsh", ShellZsh, false},
		{" /bin/bash ", ShellBash, false},
		{"fish", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseShellKind(tt.in)
			if tt.wantErr {
				assert.True(t, huierrors.IsInvalid(err), "want ErrInvalid, got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCutContinuation(t *testing.T) {
	tests := []struct {
		in       string
		want     string
		wantMore bool
	}{
		{`echo \`, "echo ", true},
		{`echo \\`, `echo \\`, false},
		{`\`, "", true},
		{"plain", "plain", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, more := cutContinuation(tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
		assert.Equal(t, tt.wantMore, more, "input %q", tt.in)
	}
}

func TestRecordEntry(t *testing.T) {
	plain := Record{Kind: RecordPlain, Text: "ls"}.Entry(7)
	assert.Equal(t, Entry{Text: "ls", Sequence: 7}, plain)

	structured := Record{Kind: RecordStructured, Text: "ls", Timestamp: 10, Duration: 2}.Entry(1)
	require.NotNil(t, structured.Timestamp)
	assert.Equal(t, int64(10), *structured.Timestamp)
	assert.Equal(t, int64(2), *structured.Duration)
}
