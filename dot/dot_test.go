package dot

import "testing"

func TestCursor(t *testing.T) {
	d := Cursor(5)
	if !d.IsCursor() {
		t.Fatalf("Cursor(5).IsCursor() = false")
	}
	if d.From != 5 || d.To != 5 {
		t.Fatalf("Cursor(5) = %+v, want {5 5}", d)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		d    Dot
		max  int
		want Dot
	}{
		{Dot{-3, 2}, 10, Dot{0, 2}},
		{Dot{2, 20}, 10, Dot{2, 10}},
		{Dot{5, 5}, 10, Dot{5, 5}},
		{Dot{-1, -1}, 10, Dot{0, 0}},
	}
	for _, test := range tests {
		got := test.d.Clamp(test.max)
		if got != test.want {
			t.Errorf("%+v.Clamp(%d) = %+v, want %+v", test.d, test.max, got, test.want)
		}
	}
}

func TestShift(t *testing.T) {
	d := Dot{From: 4, To: 9}
	got := d.Shift(3)
	want := Dot{From: 7, To: 12}
	if got != want {
		t.Errorf("Shift(3) = %+v, want %+v", got, want)
	}
}

func TestFirstLastCur(t *testing.T) {
	d := Dot{From: 2, To: 8}
	if d.FirstCur() != (Cur{Idx: 2}) {
		t.Errorf("FirstCur = %+v, want {2}", d.FirstCur())
	}
	if d.LastCur() != (Cur{Idx: 8}) {
		t.Errorf("LastCur = %+v, want {8}", d.LastCur())
	}
	if d.ActiveCur() != d.LastCur() {
		t.Errorf("ActiveCur != LastCur")
	}
}
