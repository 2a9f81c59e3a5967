package storage

import "github.com/morgan-franklin/swimmeet-api-testing/internal/domain/model"

// DefaultEvents returns the built-in nine-event catalogue used when no
// events snapshot exists on disk: four freestyle distances, one each of
// backstroke, breaststroke and butterfly, and both individual medleys.
func DefaultEvents() []model.Event {
	return []model.Event{
		{ID: 1, Name: "50m Freestyle", Code: "50free", Distance: 50, Stroke: "freestyle", Pool: "SCM"},
		{ID: 2, Name: "100m Freestyle", Code: "100free", Distance: 100, Stroke: "freestyle", Pool: "SCM"},
		{ID: 3, Name: "200m Freestyle", Code: "200free", Distance: 200, Stroke: "freestyle", Pool: "SCM"},
		{ID: 4, Name: "1500m Freestyle", Code: "1500free", Distance: 1500, Stroke: "freestyle", Pool: "SCM"},
		{ID: 5, Name: "100m Backstroke", Code: "100back", Distance: 100, Stroke: "backstroke", Pool: "SCM"},
		{ID: 6, Name: "100m Breaststroke", Code: "100breast", Distance: 100, Stroke: "breaststroke", Pool: "SCM"},
		{ID: 7, Name: "100m Butterfly", Code: "100fly", Distance: 100, Stroke: "butterfly", Pool: "SCM"},
		{ID: 8, Name: "200m Individual Medley", Code: "200IM", Distance: 200, Stroke: "im", Pool: "SCM"},
		{ID: 9, Name: "400m Individual Medley", Code: "400IM", Distance: 400, Stroke: "im", Pool: "SCM"},
	}
}
