package models

import (
	"encoding/json"
	"testing"

	"github.com/mmynk/housemate/internal/ownership"
)

func TestLookup_AgreesWithFields(t *testing.T) {
	tests := []struct {
		name   string
		typed  ownership.Record
		fields ownership.Fields
		actor  string
	}{
		{
			name:   "blank login id on puzzle",
			typed:  &Puzzle{MemberLoginID: "", MemberID: 7},
			fields: ownership.Fields{"memberLoginId": "", "memberId": 7},
			actor:  "7",
		},
		{
			name:   "puzzle owned by actor",
			typed:  &Puzzle{MemberLoginID: "alice", MemberID: 7},
			fields: ownership.Fields{"memberLoginId": "alice", "memberId": 7},
			actor:  "alice",
		},
		{
			name:   "blank login id on account",
			typed:  &Account{MemberLoginID: "", CreatedBy: 12},
			fields: ownership.Fields{"memberLoginId": "", "createdBy": 12},
			actor:  "12",
		},
		{
			name:   "account owned by mate",
			typed:  &Account{MemberLoginID: "bob", CreatedBy: 12},
			fields: ownership.Fields{"memberLoginId": "bob", "createdBy": 12},
			actor:  "alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ownership.Classify(tt.typed, tt.actor, nil)
			want := ownership.Classify(tt.fields, tt.actor, nil)
			if got != want {
				t.Errorf("typed record classified %s, map record %s", got, want)
			}
		})
	}
}

func TestAmount_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		in   string
		want Amount
	}{
		{`1500`, Won(1500)},
		{`"2000"`, Won(2000)},
		{`" 30 "`, Won(30)},
		{`12.9`, Won(12)},
		{`-500`, Won(-500)},
		{`null`, Amount{}},
		{`"abc"`, Amount{}},
		{`"NaN"`, Amount{}},
		{`"Inf"`, Amount{}},
		{`1e30`, Amount{}},
		{`"-1e30"`, Amount{}},
		{`9223372036854775808`, Amount{}},
		{`9223372036854775807`, Won(9223372036854775807)},
		{`true`, Amount{}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var got Amount
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("Unmarshal returned %v", err)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%s) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
