package dashboard

import "testing"

func TestCalculateChange(t *testing.T) {
	cases := []struct {
		current, previous, want float64
	}{
		{120, 100, 20},
		{80, 100, -20},
		{100, 100, 0},
		{50, 0, 100},
		{0, 0, 100},
		{0, 50, -100},
	}
	for _, c := range cases {
		if got := CalculateChange(c.current, c.previous); got != c.want {
			t.Fatalf("CalculateChange(%v, %v) = %v, want %v", c.current, c.previous, got, c.want)
		}
	}
}

func TestMergeTop(t *testing.T) {
	movies := []RankedContent{
		{ContentID: "m1", Type: "movie", Views: 900},
		{ContentID: "m2", Type: "movie", Views: 300},
		{ContentID: "m3", Type: "movie", Views: 100},
	}
	series := []RankedContent{
		{ContentID: "s1", Type: "webseries", Views: 500},
		{ContentID: "s2", Type: "webseries", Views: 400},
		{ContentID: "s3", Type: "webseries", Views: 200},
	}

	got := MergeTop(movies, series, 5)
	if len(got) != 5 {
		t.Fatalf("expected 5 items, got %d", len(got))
	}
	wantOrder := []string{"m1", "s1", "s2", "m2", "s3"}
	for i, id := range wantOrder {
		if got[i].ContentID != id {
			t.Fatalf("position %d: got %s, want %s (full: %+v)", i, got[i].ContentID, id, got)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i].Views > got[i-1].Views {
			t.Fatalf("not sorted descending: %+v", got)
		}
	}
}

func TestMergeTopShortInputs(t *testing.T) {
	got := MergeTop(nil, []RankedContent{{ContentID: "s1", Views: 10}}, 5)
	if len(got) != 1 || got[0].ContentID != "s1" {
		t.Fatalf("unexpected merge of short inputs: %+v", got)
	}

	if got := MergeTop(nil, nil, 5); len(got) != 0 {
		t.Fatalf("expected empty merge, got %+v", got)
	}

	// Inputs are not mutated.
	a := []RankedContent{{ContentID: "a1", Views: 1}, {ContentID: "a2", Views: 2}}
	MergeTop(a, nil, 1)
	if a[0].ContentID != "a1" || a[1].ContentID != "a2" {
		t.Fatalf("input slice mutated: %+v", a)
	}
}
