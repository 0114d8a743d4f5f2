package request

type ChatTextRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatImageForm is the multipart form of an image upload; the file part is read separately.
type ChatImageForm struct {
	Message string `form:"message"`
}

type EventSearchRequest struct {
	Query string `json:"query" binding:"required"`
	TopK  int    `json:"top_k" binding:"omitempty,min=1"`
}
