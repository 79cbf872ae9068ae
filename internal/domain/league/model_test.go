package league

import "testing"

func TestNormalizeInviteCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "xyz123", want: "XYZ123"},
		{in: " ab12 ", want: "AB12"},
		{in: "abcdefgh", want: "ABCDEF"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		if got := NormalizeInviteCode(tt.in); got != tt.want {
			t.Fatalf("NormalizeInviteCode(%q)=%q want=%q", tt.in, got, tt.want)
		}
	}
}

func TestNameOrDefault(t *testing.T) {
	if got := NameOrDefault("   "); got != DefaultName {
		t.Fatalf("unexpected fallback name: %q", got)
	}
	if got := NameOrDefault(" ChemEng 2025 "); got != "ChemEng 2025" {
		t.Fatalf("unexpected trimmed name: %q", got)
	}
}
