package graph

import (
	"github.com/pescuma/gitweb/lib/model"
	"github.com/pescuma/gitweb/lib/utils"
)

type Row struct {
	Commit string `json:"commit"`
	Index  int    `json:"index"`
	Lane   int    `json:"lane"`
	Node   Point  `json:"node"`

	LanesBefore int `json:"lanesBefore"`
	LanesAfter  int `json:"lanesAfter"`

	// Padding is where the row text starts, to the right of the lanes.
	Padding float64 `json:"padding"`
}

// Lanes is the number of lanes crossing the row, including the node lane.
func (r *Row) Lanes() int {
	return utils.Max(r.LanesBefore, r.LanesAfter, r.Lane+1)
}

type Edge struct {
	Target string  `json:"target"`
	Color  string  `json:"color"`
	Points []Point `json:"points"`
}

func newEdge(s *Stream, points []Point) Edge {
	return Edge{
		Target: s.SHA1,
		Color:  Palette[s.Color%len(Palette)],
		Points: points,
	}
}

type Page struct {
	Rows []Row `json:"rows"`

	// Edges finished inside this page.
	Edges []Edge `json:"edges"`

	// Open edges drawn down to the end of this page. They replace the open
	// edges of previous pages.
	Open []Edge `json:"open"`

	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Layout assigns lanes to commits, given newest first, continuing from state.
// The given state is not changed, the continued state is returned instead.
func Layout(state *LayoutState, commits []*model.Commit) (*LayoutState, *Page) {
	s := state.Clone()
	page := &Page{}

	for _, commit := range commits {
		if commit == nil || commit.ID == "" {
			continue
		}

		row := s.layoutRow(commit, page)
		page.Rows = append(page.Rows, row)
	}

	minLeft := utils.Min(s.MaxLanes, s.MaxPadding)
	for i := range page.Rows {
		left := utils.Max(minLeft, page.Rows[i].Lanes())
		page.Rows[i].Padding = float64(left+1) * s.LaneWidth
	}

	page.Open = s.OpenEdges()
	page.Width = s.Width()
	page.Height = s.Height()

	return s, page
}

func (s *LayoutState) layoutRow(commit *model.Commit, page *Page) Row {
	y := s.rowY(s.NextRow)
	halfRow := s.RowHeight / 2

	row := Row{
		Commit:      commit.ID,
		Index:       s.NextRow,
		LanesBefore: len(s.Streams),
	}

	index := -1
	for j := 0; j < len(s.Streams); {
		stream := s.Streams[j]

		if stream.SHA1 != commit.ID {
			j++
			continue
		}

		if index == -1 {
			index = j

			if len(commit.Parents) == 0 {
				page.Edges = append(page.Edges, newEdge(stream, stream.pathTo(Point{stream.X, y})))
				s.Streams = removeStream(s.Streams, j)
			} else {
				stream.SHA1 = commit.Parents[0]
				j++
			}

		} else {
			page.Edges = append(page.Edges, newEdge(stream, stream.pathTo(
				Point{stream.X, y - halfRow},
				Point{s.laneX(index), y},
			)))
			s.Streams = removeStream(s.Streams, j)
		}
	}

	arrived := index != -1
	if !arrived {
		index = len(s.Streams)
	}

	for j, parent := range commit.Parents {
		if j == 0 && arrived {
			continue
		}

		x := s.laneX(index + j)
		stream := &Stream{
			SHA1:  parent,
			Color: s.nextColor(),
			Points: []Point{
				{s.laneX(index), y},
				{x, y + halfRow},
			},
			X: x,
		}
		s.Streams = insertStream(s.Streams, index+j, stream)
	}

	for j := index + len(commit.Parents); j < len(s.Streams); j++ {
		stream := s.Streams[j]
		x := s.laneX(j)
		if stream.X != x {
			stream.Points = append(stream.Points, Point{stream.X, y - halfRow}, Point{x, y})
			stream.X = x
		}
	}

	row.Lane = index
	row.Node = Point{s.laneX(index), y}
	row.LanesAfter = len(s.Streams)

	s.MaxLanes = utils.Max(s.MaxLanes, row.Lanes())
	s.NextRow++

	return row
}

func removeStream(streams []*Stream, i int) []*Stream {
	return append(streams[:i], streams[i+1:]...)
}

func insertStream(streams []*Stream, i int, stream *Stream) []*Stream {
	streams = append(streams, nil)
	copy(streams[i+1:], streams[i:])
	streams[i] = stream
	return streams
}
