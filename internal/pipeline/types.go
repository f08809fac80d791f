package pipeline

// Segment is one span of recognized speech as written to the transcript.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// TranscriptResult is the JSON document produced for one audio file.
type TranscriptResult struct {
	Language string    `json:"language"`
	Duration float64   `json:"duration"`
	Segments []Segment `json:"segments"`
}

// TimelineEntry is a segment expressed as a number of video frames.
type TimelineEntry struct {
	Text   string `json:"text"`
	Frames int    `json:"frames"`
}
