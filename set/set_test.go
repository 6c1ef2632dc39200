package set

import "testing"

func TestInsert(t *testing.T) {
	s := New[string](2)
	if !s.Insert("a") {
		t.Error("first insert of a should report true")
	}
	if s.Insert("a") {
		t.Error("second insert of a should report false")
	}
	if !s.Insert("b") {
		t.Error("first insert of b should report true")
	}
}
