package model

type SlicesResponse struct {
	Slices []TimeSlice `json:"slices"`
	Stats  Stats       `json:"stats"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
