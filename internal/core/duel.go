package core

import "time"

// ShotRecord describes one resolved shot in presentation-neutral terms.
// Games emit these so the platform can persist history without knowing
// the game's internal types.
type ShotRecord struct {
	Round    int
	Shooter  string // color tag of the firing player
	Target   string // color tag of the opponent
	Angle    float64
	Velocity float64
	Wind     float64
	LandingX float64
	Distance float64
	Hit      bool
	Steps    int
}

// ShotRecorder receives shot records as they are resolved.
type ShotRecorder interface {
	RecordShot(rec ShotRecord)
}

// Recordable is implemented by games that can report resolved shots.
type Recordable interface {
	SetRecorder(r ShotRecorder)
}

// DuelSummary is the two-player outcome of a game session.
type DuelSummary struct {
	Colors   [2]string
	Scores   [2]int
	Winner   int // index of the winning player, -1 when tied or unfinished
	Rounds   int
	Shots    int
	Started  time.Time
	Finished bool // true when a win condition ended the duel
}

// DuelGame is implemented by two-player games that can summarize a session.
type DuelGame interface {
	Summary() DuelSummary
}
