package kobra

import "testing"

func testView(self, opp []Cell, selfDir, oppDir Direction, red, green *Cell) View {
	return View{
		Grid:      Grid{Width: 16, Height: 16},
		Self:      Snake{Body: self, Dir: selfDir},
		Opponent:  Snake{Body: opp, Dir: oppDir},
		Red:       red,
		Green:     green,
		WinLength: 15,
	}
}

func TestGreedy(t *testing.T) {
	far := []Cell{{12, 12}, {11, 12}, {10, 12}}
	self := []Cell{{5, 5}, {4, 5}, {3, 5}}

	tests := []struct {
		name string
		view View
		want Direction
	}{
		{
			name: "turns toward red",
			view: testView(self, far, Right, Right, cellPtr(5, 2), nil),
			want: Up,
		},
		{
			name: "avoids opponent body",
			view: testView(self, []Cell{{6, 5}, {7, 5}, {8, 5}}, Right, Left, cellPtr(9, 5), nil),
			want: Down,
		},
		{
			name: "prefers starving green",
			view: testView(self, []Cell{{12, 12}, {11, 12}}, Right, Right, cellPtr(5, 3), cellPtr(5, 8)),
			want: Down,
		},
		{
			name: "keeps heading when boxed in",
			view: testView([]Cell{{5, 5}, {4, 5}}, []Cell{{5, 6}, {6, 6}, {6, 5}, {6, 4}, {5, 4}}, Right, Left, nil, nil),
			want: Right,
		},
		{
			name: "no apples keeps straight",
			view: testView(self, far, Right, Right, nil, nil),
			want: Right,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := (Greedy{}).Next(tc.view); got != tc.want {
				t.Errorf("Next() = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestGreedyNeverReverses(t *testing.T) {
	self := []Cell{{5, 5}, {4, 5}, {3, 5}}
	for _, d := range Directions {
		// Place the target right behind the head.
		v := testView(self, []Cell{{12, 12}, {11, 12}}, Right, d, cellPtr(2, 5), nil)
		if got := (Greedy{}).Next(v); got == Left {
			t.Errorf("Greedy reversed into its own body (opponent %v)", d)
		}
	}
}

func TestStraight(t *testing.T) {
	v := testView([]Cell{{5, 5}}, nil, Up, Right, cellPtr(9, 9), nil)
	if got := (Straight{}).Next(v); got != Up {
		t.Errorf("Straight.Next() = %v, expected up", got)
	}
}

func TestPolicyByName(t *testing.T) {
	if p, err := PolicyByName("greedy"); err != nil || p != (Greedy{}) {
		t.Errorf("PolicyByName(greedy) = %v, %v", p, err)
	}
	if p, err := PolicyByName("straight"); err != nil || p != (Straight{}) {
		t.Errorf("PolicyByName(straight) = %v, %v", p, err)
	}
	if _, err := PolicyByName("oracle"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
