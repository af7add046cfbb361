package dto

import "github.com/eliteconnections/backend/internal/domain/model"

type GalleryRequestResponse struct {
	Request model.GalleryAccessRequest `json:"request"`
}

type GalleryRequestsResponse struct {
	Items []model.GalleryAccessRequest `json:"items"`
}

type GalleryUploadRequest struct {
	IsPrivate bool `json:"is_private"`
}

type GalleryUploadResponse struct {
	Image     model.GalleryImage `json:"image"`
	UploadURL string             `json:"upload_url"`
}

type GalleryResponse struct {
	Images []model.GalleryImage `json:"images"`
}
