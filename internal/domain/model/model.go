// Package model contains domain models passed between layers.
package model

// Swimmer is a registered competitor. AgeGroup is derived from Age at
// registration time and stored with the record.
type Swimmer struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
	Team     string `json:"team"`
	AgeGroup string `json:"ageGroup"`
	Email    string `json:"email,omitempty"`
}

// SwimmerPatch is a partial update for a swimmer. Nil fields are left
// untouched by the merge.
type SwimmerPatch struct {
	Name   *string `json:"name"`
	Age    *int    `json:"age"`
	Gender *string `json:"gender"`
	Team   *string `json:"team"`
	Email  *string `json:"email"`
}

// RaceResult is one recorded swim. Time keeps the submitted string form;
// IsPB is decided once, when the result is appended to the ledger.
type RaceResult struct {
	ID        int    `json:"id"`
	SwimmerID int    `json:"swimmer_id"`
	Event     string `json:"event"`
	Time      string `json:"time"`
	MeetID    int    `json:"meet_id"`
	MeetName  string `json:"meet_name,omitempty"`
	Lane      int    `json:"lane,omitempty"`
	Heat      int    `json:"heat,omitempty"`
	Date      string `json:"date"`
	IsPB      bool   `json:"isPB"`
}

// Event is a static swim-event definition, e.g. 50m freestyle.
type Event struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Distance int    `json:"distance"`
	Stroke   string `json:"stroke"`
	Pool     string `json:"pool"`
}

// RankingEntry is one row of an event leaderboard: a swimmer's best time
// positioned among peers.
type RankingEntry struct {
	Rank      int    `json:"rank"`
	SwimmerID int    `json:"swimmer_id"`
	Name      string `json:"name"`
	Team      string `json:"team"`
	Age       int    `json:"age"`
	AgeGroup  string `json:"ageGroup"`
	Time      string `json:"time"`
	Meet      string `json:"meet"`
	Date      string `json:"date"`
}

// BestTime is a swimmer's personal best for a single event.
type BestTime struct {
	Time string `json:"time"`
	Meet string `json:"meet"`
	Date string `json:"date"`
}
