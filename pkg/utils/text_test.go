package utils

import (
	"testing"
)

func TestTruncate(t *testing.T) {
	if Truncate("hello", 10) != "hello" {
		t.Error("short string unchanged")
	}
	if Truncate("hello world", 5) != "hello..." {
		t.Errorf("got %s", Truncate("hello world", 5))
	}
	if Truncate("x", 0) != "x" {
		t.Error("maxLen 0 returns as-is")
	}
	if got := Truncate("日本語のテキスト", 3); got != "日本語..." {
		t.Errorf("rune truncation: got %s", got)
	}
}

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"under limit", "short text", 20, "short text"},
		{"exact limit", "abcde", 5, "abcde"},
		{"cuts at word boundary", "hello brave new world", 13, "hello brave..."},
		{"drops trailing punctuation", "one, two, three", 9, "one..."},
		{"no whitespace falls back to hard cut", "abcdefghij", 4, "abcd..."},
		{"disabled", "anything goes", 0, "anything goes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateWords(tt.in, tt.max); got != tt.want {
				t.Errorf("TruncateWords(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestCollapseSpace(t *testing.T) {
	if got := CollapseSpace("  a \n\t b   c "); got != "a b c" {
		t.Errorf("got %q", got)
	}
}
