// internal/attribute/list_test.go
package attribute

import "testing"

func TestList_AddKeepsOrder(t *testing.T) {
	l := NewList()
	l.Add("ROI1start", "Track 1 start", 4)
	l.Add("ROI1end", "Track 1 end", 9)
	l.Add("ROI1bin", "Track 1 binning", 2)

	all := l.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 attributes, got %d", len(all))
	}
	if all[0].Name != "ROI1start" || all[1].Name != "ROI1end" || all[2].Name != "ROI1bin" {
		t.Fatalf("unexpected order: %+v", all)
	}
}

func TestList_AddReplacesExisting(t *testing.T) {
	var l List
	l.Add("ROI1start", "Track 1 start", 4)
	l.Add("ROI1start", "Track 1 start", 7)

	if l.Len() != 1 {
		t.Fatalf("expected 1 attribute, got %d", l.Len())
	}
	a, ok := l.Get("ROI1start")
	if !ok || a.Value != 7 {
		t.Fatalf("expected ROI1start=7, got %+v ok=%v", a, ok)
	}
}

func TestList_GetMissing(t *testing.T) {
	l := NewList()
	if _, ok := l.Get("ROI9bin"); ok {
		t.Fatalf("expected missing attribute")
	}
}
