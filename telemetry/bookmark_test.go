package telemetry

import "testing"

func hasBookmark(bms []Bookmark, typ BookmarkType) bool {
	for _, bm := range bms {
		if bm.Type == typ {
			return true
		}
	}
	return false
}

func TestBookmarkDetector_SliceFlurry(t *testing.T) {
	bd := NewBookmarkDetector(10)

	for i := 0; i < 5; i++ {
		bd.Check(WindowStats{WindowEndTick: int32(i * 600), Sliced: 3})
	}

	bookmarks := bd.Check(WindowStats{WindowEndTick: 3000, Sliced: 9})
	if !hasBookmark(bookmarks, BookmarkSliceFlurry) {
		t.Error("expected slice_flurry bookmark")
	}
}

func TestBookmarkDetector_ComboRecord(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if bms := bd.Check(WindowStats{BestCombo: 2}); hasBookmark(bms, BookmarkComboRecord) {
		t.Error("combo of 2 should not be a record bookmark")
	}
	if bms := bd.Check(WindowStats{BestCombo: 4}); !hasBookmark(bms, BookmarkComboRecord) {
		t.Error("expected combo_record bookmark")
	}
	if bms := bd.Check(WindowStats{BestCombo: 4}); hasBookmark(bms, BookmarkComboRecord) {
		t.Error("equal combo should not repeat the bookmark")
	}
}

func TestBookmarkDetector_DifficultyUp(t *testing.T) {
	bd := NewBookmarkDetector(10)

	if bms := bd.Check(WindowStats{SpeedMul: 1}); hasBookmark(bms, BookmarkDifficultyUp) {
		t.Error("first window has nothing to compare against")
	}
	if bms := bd.Check(WindowStats{SpeedMul: 1.2}); !hasBookmark(bms, BookmarkDifficultyUp) {
		t.Error("expected difficulty_up bookmark")
	}
	if bms := bd.Check(WindowStats{SpeedMul: 1.2}); hasBookmark(bms, BookmarkDifficultyUp) {
		t.Error("unchanged speed should not bookmark")
	}
}

func TestBookmarkDetector_SteadyPlayingFiresOnce(t *testing.T) {
	bd := NewBookmarkDetector(10)

	fired := 0
	for i := 0; i < 12; i++ {
		bms := bd.Check(WindowStats{WindowEndTick: int32(i * 600), Segments: 10, HitRate: 0.7})
		if hasBookmark(bms, BookmarkSteadyPlaying) {
			fired++
		}
	}
	if fired != 1 {
		t.Errorf("steady_playing fired %d times, want 1", fired)
	}
}

func TestBookmarkDetector_NilSafe(t *testing.T) {
	var bd *BookmarkDetector
	if bms := bd.Check(WindowStats{PoolResets: 3}); bms != nil {
		t.Errorf("nil detector returned %v", bms)
	}
}
