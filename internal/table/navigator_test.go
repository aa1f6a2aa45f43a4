package table

import "testing"

func TestRowSelectedScrollsAfterBothFutures(t *testing.T) {
	tbl, s, sched := newTestTable()
	s.scrollTop = 50
	s.rowTops["r7"] = []int{190}

	tbl.RowSelected("r7")
	sched.Advance(0)
	if s.scrollSets != 0 {
		t.Fatal("scrolled before the table rendered")
	}

	s.visible = true
	sched.Advance(RenderPollInterval)
	if s.scrollSets != 0 {
		t.Fatal("scrolled before the headers were fixed")
	}

	tbl.Relayout()
	sched.Advance(0)
	if s.scrollSets != 1 {
		t.Fatalf("scroll sets = %d, want 1", s.scrollSets)
	}
	// 50 + (190 - 50) - 20
	if s.scrollTop != 170 {
		t.Errorf("scrollTop = %d, want 170", s.scrollTop)
	}
}

func TestRowSelectedIgnoresMissingAndAmbiguousRows(t *testing.T) {
	tbl, s, sched := newTestTable()
	s.visible = true
	s.scrollTop = 30
	s.rowTops["dup"] = []int{40, 80}
	tbl.Relayout()
	sched.Advance(0)

	tbl.RowSelected("missing")
	tbl.RowSelected("dup")
	sched.Advance(RenderPollInterval)

	if s.scrollSets != 0 || s.scrollTop != 30 {
		t.Errorf("scroll changed: sets=%d top=%d", s.scrollSets, s.scrollTop)
	}
	if sched.Pending() != 0 {
		t.Errorf("ignored requests left %d checks pending", sched.Pending())
	}
}
