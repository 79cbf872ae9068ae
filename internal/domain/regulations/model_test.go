package regulations

import "testing"

func TestChecklist_Complete(t *testing.T) {
	tests := []struct {
		name string
		in   []bool
		want bool
	}{
		{name: "all checked", in: []bool{true, true, true}, want: true},
		{name: "one missing", in: []bool{true, false, true}, want: false},
		{name: "none", in: nil, want: false},
		{name: "short slice", in: []bool{true, true}, want: false},
		{name: "extra values ignored", in: []bool{true, true, true, false}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChecklistFromSlice(tt.in).Complete(); got != tt.want {
				t.Fatalf("Complete()=%v want=%v", got, tt.want)
			}
		})
	}
}

func TestChecklist_Toggle(t *testing.T) {
	var c Checklist
	c = c.Toggle(0).Toggle(1).Toggle(2)
	if !c.Complete() {
		t.Fatalf("expected complete after toggling all")
	}

	c = c.Toggle(1)
	if c.Complete() {
		t.Fatalf("expected incomplete after untoggling")
	}

	if got := c.Toggle(7); got != c {
		t.Fatalf("out-of-range toggle must be a no-op")
	}
}
