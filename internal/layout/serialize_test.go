package layout

import (
	"strings"
	"testing"
)

func TestSerialize(t *testing.T) {
	root := CreateTree([]uint32{1, 2, 3}, testBounds, 0, 0.5)

	got := Serialize(root)
	want := "(internal vertical 0.500 (leaf) (internal horizontal 0.500 (leaf) (leaf)))"
	if got != want {
		t.Fatalf("Serialize() = %q, want %q", got, want)
	}
}

func TestSerialize_NilTree(t *testing.T) {
	if got := Serialize(nil); got != "" {
		t.Fatalf("Serialize(nil) = %q, want empty", got)
	}
}

func TestDeserialize_RoundTrip(t *testing.T) {
	root := CreateTree([]uint32{1, 2, 3, 4}, testBounds, 0, 0.5)
	root.Ratio = 0.3

	parsed, err := Deserialize(Serialize(root))
	if err != nil {
		t.Fatalf("Deserialize error: %v", err)
	}

	if Serialize(parsed) != Serialize(root) {
		t.Fatalf("round trip changed the tree: %q vs %q", Serialize(parsed), Serialize(root))
	}
	for _, leaf := range parsed.Leaves() {
		if leaf.WindowID != 0 {
			t.Fatalf("deserialized leaf carries window %d, want 0", leaf.WindowID)
		}
	}
}

func TestDeserialize_WhitespaceInsensitive(t *testing.T) {
	in := "(internal   vertical\n0.500\t(leaf)(leaf))"
	root, err := Deserialize(in)
	if err != nil {
		t.Fatalf("Deserialize error: %v", err)
	}
	if root.Split != SplitVertical || !root.Left.IsLeaf() || !root.Right.IsLeaf() {
		t.Fatalf("parsed tree malformed: %q", Serialize(root))
	}
	if root.Left.Parent != root || root.Right.Parent != root {
		t.Fatal("parent pointers not set")
	}
}

func TestDeserialize_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"empty", "   "},
		{"unknown kind", "(window)"},
		{"unknown axis", "(internal diagonal 0.500 (leaf) (leaf))"},
		{"ratio out of range", "(internal vertical 0.950 (leaf) (leaf))"},
		{"unterminated", "(internal vertical 0.500 (leaf) (leaf)"},
		{"trailing tokens", "(leaf) (leaf)"},
	}
	for _, tc := range cases {
		if _, err := Deserialize(tc.in); err == nil {
			t.Fatalf("%s: expected error for %q", tc.name, tc.in)
		}
	}
}

func TestDeserialize_RejectsPartialRatio(t *testing.T) {
	_, err := Deserialize("(internal vertical abc (leaf) (leaf))")
	if err == nil || !strings.Contains(err.Error(), "ratio") {
		t.Fatalf("expected ratio parse error, got %v", err)
	}
}
