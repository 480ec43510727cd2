package transform

// Span records that OldSize positions starting at Start were replaced by
// NewSize positions.
type Span struct {
	Start   int
	OldSize int
	NewSize int
}

// MapResult is the outcome of mapping a position through a change.
type MapResult struct {
	// Pos is the mapped position.
	Pos int

	// Deleted is true when the content around the position was removed:
	// the position was strictly inside a replaced span, or on the side of
	// one that assoc pointed at.
	Deleted bool
}

// StepMap maps positions through the spans replaced by a single step.
// Spans are ordered by Start and do not overlap.
type StepMap struct {
	spans []Span
}

// NewStepMap creates a StepMap over spans.
func NewStepMap(spans ...Span) StepMap {
	return StepMap{spans: spans}
}

// Spans returns the replaced spans.
func (m StepMap) Spans() []Span {
	return m.spans
}

// Empty reports whether the map moves no positions.
func (m StepMap) Empty() bool {
	return len(m.spans) == 0
}

// Map returns the new position of pos. See MapResult.
func (m StepMap) Map(pos, assoc int) int {
	return m.MapResult(pos, assoc).Pos
}

// MapResult maps pos through the map. assoc decides which side a position
// on the edge of a replacement sticks to: negative keeps it before the
// inserted content, positive moves it after.
func (m StepMap) MapResult(pos, assoc int) MapResult {
	diff := 0
	for _, span := range m.spans {
		if span.Start > pos {
			break
		}
		end := span.Start + span.OldSize
		if pos <= end {
			side := assoc
			if span.OldSize != 0 {
				switch pos {
				case span.Start:
					side = -1
				case end:
					side = 1
				}
			}
			result := span.Start + diff
			if side >= 0 {
				result += span.NewSize
			}
			deleted := pos != end
			if assoc < 0 {
				deleted = pos != span.Start
			}
			return MapResult{Pos: result, Deleted: deleted}
		}
		diff += span.NewSize - span.OldSize
	}
	return MapResult{Pos: pos + diff}
}

// Mapping is an ordered sequence of step maps.
type Mapping struct {
	maps []StepMap
}

// Append adds a step map to the end of the mapping.
func (m *Mapping) Append(sm StepMap) {
	m.maps = append(m.maps, sm)
}

// Maps returns the step maps in application order.
func (m *Mapping) Maps() []StepMap {
	return m.maps
}

// Map returns the position of pos after every step map.
func (m *Mapping) Map(pos, assoc int) int {
	return m.MapResult(pos, assoc).Pos
}

// MapResult maps pos through every step map. The result is deleted if any
// step deleted it.
func (m *Mapping) MapResult(pos, assoc int) MapResult {
	result := MapResult{Pos: pos}
	for _, sm := range m.maps {
		r := sm.MapResult(result.Pos, assoc)
		result.Pos = r.Pos
		result.Deleted = result.Deleted || r.Deleted
	}
	return result
}
