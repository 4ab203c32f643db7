package grapheme

import "testing"

func TestTabAdvance(t *testing.T) {
	cases := []struct{ col, width, want int }{
		{0, 4, 4},
		{1, 4, 3},
		{3, 4, 1},
		{4, 4, 4},
		{5, 0, 3},
	}
	for _, tc := range cases {
		if got := TabAdvance(tc.col, tc.width); got != tc.want {
			t.Fatalf("TabAdvance(%d,%d): got %d, want %d", tc.col, tc.width, got, tc.want)
		}
	}
}

func TestClusters(t *testing.T) {
	got := Clusters("a\te\u0301\x01界", 4)
	want := []Cluster{
		{Text: "a", Col: 0, Runes: 1, Cell: 0, Width: 1},
		{Text: "\t", Col: 1, Runes: 1, Cell: 1, Width: 3},
		{Text: "e\u0301", Col: 2, Runes: 2, Cell: 4, Width: 1},
		{Text: "\x01", Col: 4, Runes: 1, Cell: 5, Width: 0},
		{Text: "界", Col: 5, Runes: 1, Cell: 5, Width: 2},
	}
	if len(got) != len(want) {
		t.Fatalf("clusters: got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cluster %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestClusters_ZWJSequenceIsOneCluster(t *testing.T) {
	got := Clusters("👩\u200d💻x", 4)
	if len(got) != 2 {
		t.Fatalf("clusters: got %+v, want 2", got)
	}
	if got[0].Runes != 3 || got[0].Width != 2 {
		t.Fatalf("emoji cluster: got %+v, want 3 runes 2 cells", got[0])
	}
	if got[1].Col != 3 || got[1].Cell != 2 {
		t.Fatalf("x cluster: got %+v, want col 3 cell 2", got[1])
	}
}

func TestCellAt(t *testing.T) {
	line := "e\u0301x\t界"
	cases := []struct{ col, want int }{
		{0, 0},
		{1, 0}, // inside the e+accent cluster
		{2, 1},
		{3, 2},
		{4, 4},
		{5, 6},
		{9, 6},
	}
	for _, tc := range cases {
		if got := CellAt(line, tc.col, 4); got != tc.want {
			t.Fatalf("CellAt(%d): got %d, want %d", tc.col, got, tc.want)
		}
	}
}
