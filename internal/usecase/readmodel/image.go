package readmodel

import "time"

type Image struct {
	ID         int       `json:"id"`
	ImageURL   string    `json:"image_url"`
	PlaceName  string    `json:"place_name"`
	UploadedAt time.Time `json:"uploaded_at"`
}
