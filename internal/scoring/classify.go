package scoring

// Level is the qualitative performance band derived from a relative score.
type Level string

const (
	LevelExcellent Level = "excellent"
	LevelGood      Level = "good"
	LevelAverage   Level = "average"
	LevelPoor      Level = "poor"
)

// TrafficLight is the at-a-glance color/label pair reporting layers render.
type TrafficLight struct {
	Color string `json:"color"`
	Label string `json:"label"`
}

func classifyScore(score float64, c LevelCutoffs) Level {
	switch {
	case score >= c.Excellent:
		return LevelExcellent
	case score >= c.Good:
		return LevelGood
	case score >= c.Average:
		return LevelAverage
	default:
		return LevelPoor
	}
}

// LightFor maps a performance level to its traffic light. Unrecognized
// levels should not occur given the fixed classification, but map to a
// gray "Unknown" rather than a zero value.
func LightFor(level Level) TrafficLight {
	switch level {
	case LevelExcellent:
		return TrafficLight{Color: "green", Label: "Excellent"}
	case LevelGood:
		return TrafficLight{Color: "teal", Label: "Good"}
	case LevelAverage:
		return TrafficLight{Color: "yellow", Label: "Average"}
	case LevelPoor:
		return TrafficLight{Color: "red", Label: "Poor"}
	default:
		return TrafficLight{Color: "gray", Label: "Unknown"}
	}
}
