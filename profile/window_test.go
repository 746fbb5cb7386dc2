package profile

import "testing"

func TestWindow(t *testing.T) {
	tests := []struct {
		name               string
		total, height, pos int
		wantFrom, wantTo   int
	}{
		{"everything fits", 10, 20, 5, 0, 10},
		{"exact fit", 10, 10, 3, 0, 10},
		{"top", 100, 10, 0, 0, 10},
		{"middle", 100, 10, 42, 42, 52},
		{"clamped to bottom", 100, 10, 95, 90, 100},
		{"negative position", 100, 10, -3, 0, 10},
		{"empty", 0, 10, 0, 0, 0},
		{"no height", 10, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to := Window(tt.total, tt.height, tt.pos)
			if from != tt.wantFrom || to != tt.wantTo {
				t.Errorf("Window(%d, %d, %d) = [%d, %d), want [%d, %d)",
					tt.total, tt.height, tt.pos, from, to, tt.wantFrom, tt.wantTo)
			}
		})
	}
}
