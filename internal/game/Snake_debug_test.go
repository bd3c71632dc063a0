//go:build debug

package game

import "testing"

func TestGrowWithoutAdvancePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected contract violation to panic in debug builds")
		}
	}()

	NewSnake(Cell{X: 5, Y: 5}, Up).Grow()
}
