package vfs

import (
	"errors"
	"testing"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "sprite.png", "sprite.png"},
		{"nested", "textures/hero/idle.png", "textures/hero/idle.png"},
		{"rooted", "/sprite.png", "sprite.png"},
		{"double slash", "//textures//hero.png", "textures/hero.png"},
		{"dot segments", "a/./b/./c", "a/b/c"},
		{"parent collapses", "a/b/../c", "a/c"},
		{"collapse to root", "a/..", ""},
		{"empty", "", ""},
		{"root", "/", ""},
		{"bare dot", ".", ""},
		{"trailing slash", "a/b/", "a/b"},
		{"backslashes", `textures\hero\idle.png`, "textures/hero/idle.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Clean(tt.in)
			if err != nil {
				t.Fatalf("Clean(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanRejectsEscapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"parent", ".."},
		{"leading parent", "../secret.txt"},
		{"climb out", "a/../../secret.txt"},
		{"deep climb", "a/b/../../../secret.txt"},
		{"rooted climb", "/../secret.txt"},
		{"backslash climb", `..\secret.txt`},
		{"nul byte", "sprite\x00.png"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Clean(tt.in); !errors.Is(err, ErrInvalidPath) {
				t.Errorf("Clean(%q) error = %v, want ErrInvalidPath", tt.in, err)
			}
		})
	}
}

func TestCleanEquality(t *testing.T) {
	// Paths addressing the same file must normalize identically.
	forms := []string{"a/b/c.png", "/a/b/c.png", "a//b/./c.png", `a\b\c.png`, "a/x/../b/c.png"}
	want, err := Clean(forms[0])
	if err != nil {
		t.Fatalf("Clean(%q) error: %v", forms[0], err)
	}
	for _, f := range forms[1:] {
		got, err := Clean(f)
		if err != nil {
			t.Fatalf("Clean(%q) error: %v", f, err)
		}
		if got != want {
			t.Errorf("Clean(%q) = %q, want %q", f, got, want)
		}
	}
}
