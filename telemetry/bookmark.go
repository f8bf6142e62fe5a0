package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSliceFlurry   BookmarkType = "slice_flurry"
	BookmarkComboRecord   BookmarkType = "combo_record"
	BookmarkDifficultyUp  BookmarkType = "difficulty_up"
	BookmarkPoolPressure  BookmarkType = "pool_pressure"
	BookmarkSteadyPlaying BookmarkType = "steady_playing"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int32        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector flags notable stats windows.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	bestCombo         int
	lastSpeedMul      float64
	steadyWindowCount int
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 4 {
		historySize = 4
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	if bd == nil {
		return nil
	}
	var bookmarks []Bookmark

	for _, check := range []func(WindowStats) *Bookmark{
		bd.checkSliceFlurry,
		bd.checkComboRecord,
		bd.checkDifficultyUp,
		bd.checkPoolPressure,
		bd.checkSteadyPlaying,
	} {
		if b := check(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkSliceFlurry fires when slices exceed twice the rolling average.
func (bd *BookmarkDetector) checkSliceFlurry(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Sliced
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Sliced) > avg*2 && stats.Sliced >= 5 {
		return &Bookmark{
			Type:        BookmarkSliceFlurry,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("%d slices is %.1fx average (%.1f)", stats.Sliced, float64(stats.Sliced)/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkComboRecord(stats WindowStats) *Bookmark {
	if stats.BestCombo <= bd.bestCombo {
		return nil
	}
	old := bd.bestCombo
	bd.bestCombo = stats.BestCombo
	if stats.BestCombo < 3 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkComboRecord,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Combo record %d (was %d)", stats.BestCombo, old),
	}
}

func (bd *BookmarkDetector) checkDifficultyUp(stats WindowStats) *Bookmark {
	prev := bd.lastSpeedMul
	bd.lastSpeedMul = stats.SpeedMul
	if prev == 0 || stats.SpeedMul <= prev {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkDifficultyUp,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Speed multiplier %.2f -> %.2f", prev, stats.SpeedMul),
	}
}

func (bd *BookmarkDetector) checkPoolPressure(stats WindowStats) *Bookmark {
	if stats.PoolResets == 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkPoolPressure,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Particle pool reset %d times", stats.PoolResets),
	}
}

// checkSteadyPlaying fires once after four consecutive windows whose hit rate
// stays within 0.1 of each other and above one half.
func (bd *BookmarkDetector) checkSteadyPlaying(stats WindowStats) *Bookmark {
	if stats.Segments == 0 || stats.HitRate < 0.5 {
		bd.steadyWindowCount = 0
		return nil
	}

	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	lo, hi := stats.HitRate, stats.HitRate
	for _, h := range history[len(history)-3:] {
		lo = min(lo, h.HitRate)
		hi = max(hi, h.HitRate)
	}
	if hi-lo <= 0.1 {
		bd.steadyWindowCount++
	} else {
		bd.steadyWindowCount = 0
	}

	if bd.steadyWindowCount == 4 {
		return &Bookmark{
			Type:        BookmarkSteadyPlaying,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Hit rate steady around %.2f", stats.HitRate),
		}
	}
	return nil
}
