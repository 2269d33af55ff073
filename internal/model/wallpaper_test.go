package model

import "testing"

func TestQuery_TrimmedID(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{"", ""},
		{"   ", ""},
		{" 42 ", "42"},
		{"\t7\n", "7"},
	}

	for _, test := range tests {
		q := Query{CharacterID: test.raw}
		if got := q.TrimmedID(); got != test.expected {
			t.Errorf("TrimmedID() with raw=%q = %q, expected %q", test.raw, got, test.expected)
		}
	}
}

func TestCharacterLists(t *testing.T) {
	lists := CharacterLists()
	if len(lists) != 2 || lists[0] != CharacterListHSK || lists[1] != CharacterListHanja {
		t.Errorf("CharacterLists() = %v, expected [hsk hanja]", lists)
	}
}
