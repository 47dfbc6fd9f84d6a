package strings

import "testing"

func TestNormalizeWhitespace(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace only",
			input: " \n\t ",
			want:  "",
		},
		{
			name:  "single token",
			input: "milk",
			want:  "milk",
		},
		{
			name:  "collapses spaces",
			input: "one   two    three",
			want:  "one two three",
		},
		{
			name:  "collapses newlines",
			input: "one\n\n two\tthree",
			want:  "one two three",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeWhitespace(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestTidyPunctuation(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "",
		},
		{
			name:  "space before comma",
			input: "call mom , then dad",
			want:  "call mom, then dad",
		},
		{
			name:  "space before each mark",
			input: "a . b ! c ? d ; e : f",
			want:  "a. b! c? d; e: f",
		},
		{
			name:  "trailing punctuation after removed phrase",
			input: "  Pay rent  .",
			want:  "Pay rent.",
		},
		{
			name:  "leaves other symbols",
			input: "fix #bug - now",
			want:  "fix #bug - now",
		},
		{
			name:  "leading punctuation",
			input: " , later",
			want:  ", later",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := TidyPunctuation(tc.input)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestNormalizeLowerTrimSpace(t *testing.T) {
	if got := NormalizeLowerTrimSpace("  HideCompleted "); got != "hidecompleted" {
		t.Fatalf("expected %q, got %q", "hidecompleted", got)
	}
}

func TestContainsFold(t *testing.T) {
	if !ContainsFold("Call Bob TONIGHT", "tonight") {
		t.Fatal("expected case-insensitive match")
	}
	if ContainsFold("tomorrow", "tonight") {
		t.Fatal("expected no match")
	}
}

func TestNormalizeNewlines(t *testing.T) {
	if got := TrimTrailingNewlines(NormalizeNewlines("a\r\nb\rc\n\n")); got != "a\nb\nc" {
		t.Fatalf("expected %q, got %q", "a\nb\nc", got)
	}
}
