package components

import (
	"strings"
	"testing"
)

func testTable() *Table {
	return NewTable([]Column{
		{Title: "ID", Width: 4, Align: AlignRight},
		{Title: "Name", Width: 12},
	})
}

func rows(n int) [][]string {
	out := make([][]string, n)
	for i := range out {
		out[i] = []string{string(rune('0' + i%10)), "row"}
	}
	return out
}

func TestTableNavigation(t *testing.T) {
	tb := testTable()
	tb.SetRows(rows(5))

	if tb.Selected() != 0 {
		t.Fatalf("initial selection = %d, want 0", tb.Selected())
	}

	tb.MoveDown()
	tb.MoveDown()
	if tb.Selected() != 2 {
		t.Errorf("after two MoveDown: %d, want 2", tb.Selected())
	}

	tb.MoveUp()
	if tb.Selected() != 1 {
		t.Errorf("after MoveUp: %d, want 1", tb.Selected())
	}

	// Cannot move past either end.
	tb.MoveUp()
	tb.MoveUp()
	if tb.Selected() != 0 {
		t.Errorf("cursor went past the top: %d", tb.Selected())
	}
	for i := 0; i < 10; i++ {
		tb.MoveDown()
	}
	if tb.Selected() != 4 {
		t.Errorf("cursor went past the bottom: %d", tb.Selected())
	}
}

func TestTableScrollWindow(t *testing.T) {
	tb := testTable()
	tb.SetVisibleRows(3)
	tb.SetRows(rows(10))

	tb.PageDown()
	if tb.Selected() != 3 {
		t.Errorf("PageDown moved cursor to %d, want 3", tb.Selected())
	}

	tb.PageUp()
	if tb.Selected() != 0 {
		t.Errorf("PageUp moved cursor to %d, want 0", tb.Selected())
	}

	tb.PageDown()
	tb.PageDown()
	tb.PageDown()
	tb.PageDown()
	if tb.Selected() != 9 {
		t.Errorf("repeated PageDown should land on the last row, got %d", tb.Selected())
	}

	tb.GotoTop()
	if tb.Selected() != 0 {
		t.Errorf("GotoTop left cursor at %d", tb.Selected())
	}
}

func TestTableCursorClampsOnShrink(t *testing.T) {
	tb := testTable()
	tb.SetRows(rows(10))
	for i := 0; i < 9; i++ {
		tb.MoveDown()
	}

	tb.SetRows(rows(3))
	if tb.Selected() != 2 {
		t.Errorf("cursor after shrink = %d, want 2", tb.Selected())
	}

	tb.SetRows(nil)
	if tb.Selected() != -1 {
		t.Errorf("empty table selection = %d, want -1", tb.Selected())
	}
	if tb.SelectedRow() != nil {
		t.Error("empty table should have no selected row")
	}
}

func TestTableRender(t *testing.T) {
	tb := testTable()
	tb.SetRows([][]string{
		{"1", "Alvarez"},
		{"2", "Benitez"},
	})

	out := tb.Render()
	for _, want := range []string{"ID", "Name", "Alvarez", "Benitez"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
}

func TestTableRenderEmpty(t *testing.T) {
	tb := testTable()
	tb.SetRows(nil)

	if !strings.Contains(tb.Render(), "no entries") {
		t.Error("empty table should render a placeholder")
	}
}

func TestTablePaginationFooter(t *testing.T) {
	tb := testTable()
	tb.SetRows(rows(10))
	tb.SetPagination(2, 5, 48)

	out := tb.Render()
	if !strings.Contains(out, "Page 2/5 (48 total)") {
		t.Errorf("pagination footer missing:\n%s", out)
	}
}

func TestTableTruncatesWideCells(t *testing.T) {
	tb := NewTable([]Column{{Title: "N", Width: 6}})
	tb.SetRows([][]string{{"much too long for the column"}})

	out := tb.Render()
	if strings.Contains(out, "much too long") {
		t.Error("cell was not truncated to the column width")
	}
	if !strings.Contains(out, "…") {
		t.Error("truncated cell should carry an ellipsis")
	}
}
