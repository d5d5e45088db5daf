package standings

import "time"

// WeeklyScore is the persisted gameweek total for one player. Rows are a
// derived cache: only the gameweek aggregation writes them, always by
// replacing the whole gameweek.
type WeeklyScore struct {
	PlayerID           string
	Gameweek           int
	Points             int
	IsManagerOfTheWeek bool
	CalculatedAt       time.Time
}

// TableRow is one ranked entry in a served table.
type TableRow struct {
	Rank               int    `json:"rank"`
	PlayerID           string `json:"playerId"`
	PlayerName         string `json:"playerName"`
	Points             int    `json:"points"`
	IsManagerOfTheWeek bool   `json:"isManagerOfTheWeek,omitempty"`
	AwaitingResults    bool   `json:"awaitingResults,omitempty"`
}

// Table is a weekly or cumulative view over scores.
type Table struct {
	Gameweek int        `json:"gameweek,omitempty"`
	IsLive   bool       `json:"isLive"`
	Rows     []TableRow `json:"rows"`
}
