package transform

import "testing"

func TestAssignLayers(t *testing.T) {
	tests := []struct {
		name  string
		nodes int
		edges [][2]int64
		want  map[int64]int
	}{
		{
			name:  "three generations",
			nodes: 3,
			edges: [][2]int64{{1, 2}, {2, 3}},
			want:  map[int64]int{1: 0, 2: 1, 3: 2},
		},
		{
			name:  "child of parents at different depths",
			nodes: 4,
			edges: [][2]int64{{1, 2}, {2, 4}, {3, 4}},
			want:  map[int64]int{1: 0, 2: 1, 3: 0, 4: 2},
		},
		{
			name:  "unconnected people stay on top",
			nodes: 2,
			want:  map[int64]int{1: 0, 2: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := build(t, tt.nodes, tt.edges...)
			AssignLayers(g)
			for id, want := range tt.want {
				n, _ := g.Node(id)
				if n.Row != want {
					t.Errorf("row(%d) = %d, want %d", id, n.Row, want)
				}
			}
			if err := g.Validate(); err != nil {
				t.Errorf("Validate() = %v", err)
			}
		})
	}
}

func TestAssignLayers_AfterBreakCycles(t *testing.T) {
	g := build(t, 3, [2]int64{1, 2}, [2]int64{2, 3}, [2]int64{3, 1})
	BreakCycles(g)
	AssignLayers(g)
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
}
