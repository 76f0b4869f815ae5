package ingest

// Fixed blend weights for the two upstream sentiment models. The engine
// treats the blended value as opaque; the blend itself lives here with the
// rest of the ingestion contract.
const (
	vaderWeight    = 0.7
	textblobWeight = 0.3
)

// CombinedSentiment returns the combined sentiment for a row. An explicit
// combined column wins; otherwise the two model columns are blended with
// the fixed weights. A single model score passes through unweighted. The
// result is clamped to [-1, 1]; nil means the row carried no sentiment.
func CombinedSentiment(combined, vader, textblob *float64) *float64 {
	var v float64
	switch {
	case combined != nil:
		v = *combined
	case vader != nil && textblob != nil:
		v = vaderWeight**vader + textblobWeight**textblob
	case vader != nil:
		v = *vader
	case textblob != nil:
		v = *textblob
	default:
		return nil
	}

	if v > 1 {
		v = 1
	}
	if v < -1 {
		v = -1
	}
	return &v
}
