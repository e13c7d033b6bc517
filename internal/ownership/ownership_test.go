package ownership

import (
	"encoding/json"
	"testing"
)

func TestClassify_FailsClosed(t *testing.T) {
	rec := Fields{"memberLoginId": "", "memberId": 0}
	for _, actor := range []any{nil, "", "   "} {
		if got := Classify(rec, actor, nil); got != Mate {
			t.Errorf("actor %q: got %s, want mate", actor, got)
		}
	}
	if got := Classify(nil, "alice", nil); got != Mate {
		t.Errorf("nil record: got %s, want mate", got)
	}
	if got := Classify(Fields(nil), "alice", nil); got != Mate {
		t.Errorf("nil fields: got %s, want mate", got)
	}
	if got := Classify(Fields{"title": "x"}, "alice", nil); got != Mate {
		t.Errorf("no owner field: got %s, want mate", got)
	}
}

func TestClassify_Normalization(t *testing.T) {
	tests := []struct {
		name  string
		rec   Fields
		actor any
		want  Author
	}{
		{"whitespace and case", Fields{"memberLoginId": " Abc "}, "abc", Me},
		{"actor normalized too", Fields{"memberLoginId": "abc"}, "  ABC", Me},
		{"number vs string", Fields{"memberId": 42}, "42", Me},
		{"json float vs string", Fields{"memberId": float64(42)}, "42", Me},
		{"json number", Fields{"memberId": json.Number("42")}, 42, Me},
		{"int64 actor", Fields{"createdBy": "7"}, int64(7), Me},
		{"different", Fields{"memberLoginId": "bob"}, "alice", Mate},
		{"prefix only", Fields{"memberLoginId": "alice2"}, "alice", Mate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.rec, tt.actor, nil); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestClassify_FieldPriority(t *testing.T) {
	fields := []string{"a", "b", "c"}

	rec := Fields{"b": "bob", "c": "alice"}
	if got := Classify(rec, "alice", fields); got != Mate {
		t.Errorf("expected b to win over c, got %s", got)
	}

	// A defined but falsy value still stops the probe.
	rec = Fields{"a": "", "b": "alice"}
	if got := Classify(rec, "alice", fields); got != Mate {
		t.Errorf("expected empty a to win over b, got %s", got)
	}
	rec = Fields{"a": 0, "c": "alice"}
	if got := Classify(rec, "alice", fields); got != Mate {
		t.Errorf("expected zero a to win over c, got %s", got)
	}

	rec = Fields{"c": "alice"}
	if got := Classify(rec, "alice", fields); got != Me {
		t.Errorf("expected fallthrough to c, got %s", got)
	}
}

func TestTagAll(t *testing.T) {
	records := []Fields{
		{"memberLoginId": "alice"},
		nil,
		{"memberLoginId": "bob"},
		{"createdBy": "ALICE"},
	}

	tagged := TagAll(records, "alice", nil)
	if len(tagged) != len(records) {
		t.Fatalf("expected %d tagged records, got %d", len(records), len(tagged))
	}
	want := []Author{Me, Mate, Mate, Me}
	for i, tr := range tagged {
		if tr.Author != want[i] {
			t.Errorf("record %d: got %s, want %s", i, tr.Author, want[i])
		}
	}
	if tagged[2].Record["memberLoginId"] != "bob" {
		t.Error("TagAll must keep the input order")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"  MiXeD ", "mixed"},
		{12, "12"},
		{float64(12), "12"},
		{12.5, "12.5"},
		{true, "true"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
