package commands

import (
	"strings"
	"testing"
)

func TestMakeTable(t *testing.T) {
	expected := `Email    Name
a@x.org  Alice Adams
b@x.org
c@x.org  Cé
`

	table, err := makeTable([]string{"Email", "Name"}, [][]string{
		{"a@x.org", "Alice Adams"},
		{"b@x.org"},
		{"c@x.org", "Cé"},
	})

	if err != nil {
		t.Fatalf("Unexpected error returned from makeTable (%v)", err)
	}

	var b strings.Builder
	table.print(&b)

	if b.String() != expected {
		t.Errorf("Incorrect table\n   expected: %v\n   got:      %v\n", expected, b.String())
	}
}

func TestMakeTableWithoutHeader(t *testing.T) {
	if _, err := makeTable([]string{}, [][]string{}); err == nil {
		t.Errorf("Expected error return for missing header")
	}
}

func TestMakeTableWithOverlongRecord(t *testing.T) {
	if _, err := makeTable([]string{"Email"}, [][]string{{"a@x.org", "Alice"}}); err == nil {
		t.Errorf("Expected error return for record with more fields than header")
	}
}
