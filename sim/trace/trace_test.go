package trace

import (
	"testing"
)

func TestTimeline_Append_MergesSameLabel(t *testing.T) {
	// GIVEN a timeline with one segment for job A
	tl := NewTimeline()
	tl.Append(Segment{Start: 0, End: 2, Label: "A"})

	// WHEN A continues
	tl.Append(Segment{Start: 2, End: 5, Label: "A"})

	// THEN the segments are merged
	if len(tl.Segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(tl.Segments))
	}
	if tl.Segments[0].End != 5 {
		t.Errorf("expected merged end 5, got %d", tl.Segments[0].End)
	}
}

func TestTimeline_Append_IdleDoesNotMergeWithJob(t *testing.T) {
	tl := NewTimeline()
	tl.Append(Segment{Start: 0, End: 2, Label: "A"})
	tl.Append(Segment{Start: 2, End: 4, Label: IdleLabel, Idle: true})
	tl.Append(Segment{Start: 4, End: 6, Label: IdleLabel, Idle: true})
	tl.Append(Segment{Start: 6, End: 7, Label: "A"})

	if len(tl.Segments) != 3 {
		t.Fatalf("expected 3 segments, got %d: %+v", len(tl.Segments), tl.Segments)
	}
	if tl.Segments[1].Len() != 4 {
		t.Errorf("expected idle segment of 4 ticks, got %d", tl.Segments[1].Len())
	}
}

func TestTimeline_Append_DropsEmptySegments(t *testing.T) {
	tl := NewTimeline()
	tl.Append(Segment{Start: 3, End: 3, Label: "A"})
	if len(tl.Segments) != 0 {
		t.Errorf("expected empty segment to be dropped, got %+v", tl.Segments)
	}
}

func TestTimeline_Append_GapPanics(t *testing.T) {
	tl := NewTimeline()
	tl.Append(Segment{Start: 0, End: 2, Label: "A"})
	defer func() {
		if recover() == nil {
			t.Error("expected panic for non-contiguous segment")
		}
	}()
	tl.Append(Segment{Start: 3, End: 4, Label: "B"})
}

func TestDecisionLog_Record_RespectsLevel(t *testing.T) {
	tests := []struct {
		level TraceLevel
		want  int
	}{
		{TraceLevelNone, 0},
		{TraceLevelDecisions, 2},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			dl := NewDecisionLog(tt.level)
			dl.Record(DecisionRecord{Clock: 0, Kind: DecisionDispatch, JobID: "A", Remaining: 3})
			dl.Record(DecisionRecord{Clock: 3, Kind: DecisionComplete, JobID: "A"})
			if len(dl.Decisions) != tt.want {
				t.Errorf("expected %d decisions, got %d", tt.want, len(dl.Decisions))
			}
		})
	}
}

func TestDecisionLog_Record_PreservesOrder(t *testing.T) {
	dl := NewDecisionLog(TraceLevelDecisions)
	for _, id := range []string{"A", "B", "C"} {
		dl.Record(DecisionRecord{Kind: DecisionDispatch, JobID: id})
	}
	for i, want := range []string{"A", "B", "C"} {
		if dl.Decisions[i].JobID != want {
			t.Errorf("decision %d: expected %s, got %s", i, want, dl.Decisions[i].JobID)
		}
	}
}

func TestDecisionLog_NilIsNoOp(t *testing.T) {
	var dl *DecisionLog
	dl.Record(DecisionRecord{Kind: DecisionIdle})
}

func TestIsValidTraceLevel_ValidLevels(t *testing.T) {
	for _, level := range []string{"", "none", "decisions"} {
		if !IsValidTraceLevel(level) {
			t.Errorf("expected %q to be valid", level)
		}
	}
	for _, level := range []string{"all", "DECISIONS", "verbose"} {
		if IsValidTraceLevel(level) {
			t.Errorf("expected %q to be invalid", level)
		}
	}
}
