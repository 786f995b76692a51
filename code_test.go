package varhuff

import (
	"testing"
)

func TestCode_String(t *testing.T) {
	type testRow struct {
		hc     Code
		expect string
	}

	testData := [...]testRow{
		{hc: MakeCode(0, 0), expect: `""`},
		{hc: MakeCode(1, 0), expect: `"0"`},
		{hc: MakeCode(4, 0x3), expect: `"0011"`},
		{hc: MakeCode(4, 0xc), expect: `"1100"`},
		{hc: MakeCode(9, 0x101), expect: `"100000001"`},
	}
	for _, row := range testData {
		actual := row.hc.String()
		if actual != row.expect {
			t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", row.expect, actual)
		}
	}
}

func TestCode_AppendParentSibling(t *testing.T) {
	hc := Code{}.Append(true).Append(false).Append(true)
	if expect := MakeCode(3, 0x5); hc != expect {
		t.Fatalf("Append: expected %s, got %s", expect, hc)
	}
	if expect := MakeCode(2, 0x2); hc.Parent() != expect {
		t.Errorf("Parent: expected %s, got %s", expect, hc.Parent())
	}
	if expect := MakeCode(3, 0x4); hc.Sibling() != expect {
		t.Errorf("Sibling: expected %s, got %s", expect, hc.Sibling())
	}
	if hc.Sibling().Sibling() != hc {
		t.Errorf("Sibling is not an involution for %s", hc)
	}
}

func TestCode_Valid(t *testing.T) {
	type testRow struct {
		hc     Code
		expect bool
	}

	testData := [...]testRow{
		{hc: MakeCode(0, 0), expect: true},
		{hc: MakeCode(0, 1), expect: false},
		{hc: MakeCode(3, 0x7), expect: true},
		{hc: MakeCode(3, 0x8), expect: false},
		{hc: MakeCode(64, ^uint64(0)), expect: true},
		{hc: MakeCode(65, 0), expect: false},
	}
	for _, row := range testData {
		if actual := row.hc.Valid(); actual != row.expect {
			t.Errorf("Code{%d, %#x}.Valid(): expected %v, got %v", row.hc.Size, row.hc.Bits, row.expect, actual)
		}
	}
}
