package graph

import (
	"math"
)

const (
	DefaultRowHeight  = 55
	DefaultLaneWidth  = 12
	DefaultMaxPadding = 3
	NodeRadius        = 4
)

type Options struct {
	RowHeight  float64
	LaneWidth  float64
	MaxPadding int
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Stream is an open edge, waiting for the commit in SHA1 to show up.
type Stream struct {
	SHA1   string  `json:"sha1"`
	Color  int     `json:"color"`
	Points []Point `json:"points"`

	// X is the column the stream is currently drawn at. The last point of
	// the path is only known when the stream reaches a later row.
	X float64 `json:"x"`
}

func (s *Stream) clone() *Stream {
	result := *s
	result.Points = append([]Point(nil), s.Points...)
	return &result
}

func (s *Stream) pathTo(points ...Point) []Point {
	result := make([]Point, 0, len(s.Points)+len(points))
	result = append(result, s.Points...)
	result = append(result, points...)
	return result
}

// LayoutState is everything the layout carries from one page to the next.
type LayoutState struct {
	Streams     []*Stream `json:"streams"`
	ColorCursor int       `json:"colorCursor"`
	NextRow     int       `json:"nextRow"`
	MaxLanes    int       `json:"maxLanes"`

	RowHeight  float64 `json:"rowHeight"`
	LaneWidth  float64 `json:"laneWidth"`
	MaxPadding int     `json:"maxPadding"`
}

// NewLayoutState starts a fresh layout, with no open streams and the color
// cursor at the start of the palette.
func NewLayoutState(opts *Options) *LayoutState {
	if opts == nil {
		opts = &Options{}
	}

	result := &LayoutState{
		RowHeight:  opts.RowHeight,
		LaneWidth:  opts.LaneWidth,
		MaxPadding: opts.MaxPadding,
	}
	if result.RowHeight <= 0 {
		result.RowHeight = DefaultRowHeight
	}
	if result.LaneWidth <= 0 {
		result.LaneWidth = DefaultLaneWidth
	}
	if result.MaxPadding <= 0 {
		result.MaxPadding = DefaultMaxPadding
	}

	return result
}

// MeasuredRowHeight rounds a rendered row height up to an even number, so
// half rows stay integral.
func MeasuredRowHeight(h float64) float64 {
	return math.Ceil(h/2) * 2
}

func (s *LayoutState) Clone() *LayoutState {
	result := *s
	result.Streams = make([]*Stream, len(s.Streams))
	for i, stream := range s.Streams {
		result.Streams[i] = stream.clone()
	}
	return &result
}

func (s *LayoutState) laneX(lane int) float64 {
	return float64(lane+1) * s.LaneWidth
}

func (s *LayoutState) rowY(row int) float64 {
	return (float64(row) + 0.5) * s.RowHeight
}

// Height of everything laid out so far.
func (s *LayoutState) Height() float64 {
	return float64(s.NextRow) * s.RowHeight
}

// Width of the canvas needed for the widest row so far.
func (s *LayoutState) Width() float64 {
	return s.LaneWidth * float64(s.MaxLanes+1)
}

func (s *LayoutState) nextColor() int {
	s.ColorCursor++
	if s.ColorCursor >= len(Palette) {
		s.ColorCursor = 0
	}
	return s.ColorCursor
}

// OpenEdges draws the streams still waiting for their commit down to the
// bottom of the laid out rows.
func (s *LayoutState) OpenEdges() []Edge {
	bottom := s.Height()

	result := make([]Edge, 0, len(s.Streams))
	for _, stream := range s.Streams {
		result = append(result, newEdge(stream, stream.pathTo(Point{stream.X, bottom})))
	}
	return result
}
