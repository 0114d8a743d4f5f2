package readmodel

import "io"

type ImageUpload struct {
	Filename string
	Content  io.Reader
}

type Recognition struct {
	PredictedPlace string
	Confidence     float64
	Response       string
}

type Event struct {
	Content  string
	Date     string
	Location string
	Category string
}

type EventSearch struct {
	Events   []Event
	Response string
}
