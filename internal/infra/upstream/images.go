package upstream

import (
	"context"
	"net/http"
	"strconv"
)

type UserImage struct {
	ID         int    `json:"id"`
	ImageURL   string `json:"image_url"`
	PlaceName  string `json:"place_name"`
	UploadedAt string `json:"uploaded_at"`
}

type ImagesResponse struct {
	Images []UserImage `json:"images"`
	Count  int         `json:"count"`
}

func (c *Client) Images(ctx context.Context, token string) (*ImagesResponse, error) {
	var out ImagesResponse
	if err := c.getJSON(ctx, "images.list", "/api/chat/images/", token, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteImage(ctx context.Context, token string, imageID int) error {
	path := "/api/chat/images/" + strconv.Itoa(imageID) + "/"
	return c.sendJSON(ctx, "images.delete", http.MethodDelete, path, token, nil, nil)
}
