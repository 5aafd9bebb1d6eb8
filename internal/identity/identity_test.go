package identity

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    PartyID
		wantErr bool
	}{
		{in: "alice", want: "alice"},
		{in: "Alice", want: "alice"},
		{in: "  ALICE  ", want: "alice"},
		{in: "bob-2", want: "bob-2"},
		{in: "carol.d_e", want: "carol.d_e"},
		{in: "42crew", want: "42crew"},
		{in: "ab", wantErr: true},
		{in: "", wantErr: true},
		{in: "-alice", wantErr: true},
		{in: "al ice", wantErr: true},
		{in: "alice!", wantErr: true},
		{in: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", wantErr: true}, // 65 chars
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error, got %q", tt.in, got)
				continue
			}
			var invalid *InvalidPartyError
			if !errors.As(err, &invalid) {
				t.Errorf("Parse(%q): error is %T, want *InvalidPartyError", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Parse(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseCasingCollapses(t *testing.T) {
	a, err := Parse("Alice")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Parse("aLiCe")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("differently-cased spellings resolved to distinct parties: %q vs %q", a, b)
	}
}

func TestParseAll(t *testing.T) {
	got, err := ParseAll([]string{"Alice", "bob"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "alice" || got[1] != "bob" {
		t.Errorf("ParseAll = %v", got)
	}

	if _, err := ParseAll([]string{"alice", "!"}); err == nil {
		t.Error("expected error for invalid element")
	}
}
