package models

// Badge is an earned achievement shown on the player stats page.
type Badge struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// PlayerStats aggregates one player's approved completions across all
// events: total points awarded, tiles completed, distinct events entered.
type PlayerStats struct {
	Name   string  `json:"name"`
	Points int     `json:"points"`
	Tiles  int     `json:"tiles"`
	Events int     `json:"events"`
	Badges []Badge `json:"badges"`
}

// BadgeDef pairs a badge with its threshold over aggregated stats.
type BadgeDef struct {
	Badge
	Earned func(points, tiles, events int) bool
}

// BadgeDefs are the fixed badge thresholds. Not configurable.
var BadgeDefs = []BadgeDef{
	{Badge{"first_tile", "First Blood", "⚔️"}, func(p, t, e int) bool { return t >= 1 }},
	{Badge{"ten_tiles", "Tile Hunter", "🎯"}, func(p, t, e int) bool { return t >= 10 }},
	{Badge{"fifty_tiles", "Tile Master", "👑"}, func(p, t, e int) bool { return t >= 50 }},
	{Badge{"hundred_points", "Point Collector", "💰"}, func(p, t, e int) bool { return p >= 100 }},
	{Badge{"five_hundred_points", "Point Hoarder", "💎"}, func(p, t, e int) bool { return p >= 500 }},
	{Badge{"first_event", "Event Rookie", "🎪"}, func(p, t, e int) bool { return e >= 1 }},
	{Badge{"five_events", "Event Veteran", "🏆"}, func(p, t, e int) bool { return e >= 5 }},
}

// BadgesFor evaluates every threshold against the given aggregates.
func BadgesFor(points, tiles, events int) []Badge {
	var earned []Badge
	for _, def := range BadgeDefs {
		if def.Earned(points, tiles, events) {
			earned = append(earned, def.Badge)
		}
	}
	return earned
}
