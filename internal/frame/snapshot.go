package frame

import "yaraycaster/internal/projector"

// Snapshot is the wire form of a Result for spectators.
type Snapshot struct {
	Session string       `json:"session"`
	Tick    uint64       `json:"tick"`
	X       float64      `json:"x"`
	Y       float64      `json:"y"`
	Angle   float64      `json:"angle"`
	Fired   bool         `json:"fired,omitempty"`
	Strips  []StripState `json:"strips"`
}

// StripState is one strip without the renderer-only fields.
type StripState struct {
	Column        int     `json:"column"`
	Top           float64 `json:"top"`
	Height        float64 `json:"height"`
	Texture       string  `json:"texture"`
	TextureColumn int     `json:"texture_column"`
	Layer         int     `json:"layer"`
	Side          string  `json:"side"`
}

// Snapshot flattens r as tick of the named session.
func (r Result) Snapshot(session string, tick uint64) Snapshot {
	s := Snapshot{
		Session: session,
		Tick:    tick,
		X:       r.Player.X,
		Y:       r.Player.Y,
		Angle:   r.Player.Angle,
		Fired:   r.Player.Fired,
		Strips:  make([]StripState, len(r.Strips)),
	}
	for i, st := range r.Strips {
		s.Strips[i] = stripState(st)
	}
	return s
}

func stripState(st projector.Strip) StripState {
	return StripState{
		Column:        st.Column,
		Top:           st.Top,
		Height:        st.Height,
		Texture:       st.Texture,
		TextureColumn: st.TextureColumn,
		Layer:         st.Layer,
		Side:          st.Side.String(),
	}
}
