package response

import (
	"time"

	"stamp-rally/internal/usecase/readmodel"
)

type ImageResponse struct {
	ID         int       `json:"id"`
	ImageURL   string    `json:"image_url"`
	PlaceName  string    `json:"place_name"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func FromImages(images []readmodel.Image) []ImageResponse {
	out := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, ImageResponse(img))
	}
	return out
}
