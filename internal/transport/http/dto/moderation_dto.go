package dto

import pgrepo "github.com/eliteconnections/backend/internal/repo/postgres"

type ReviewQueueResponse struct {
	Entries []pgrepo.ReviewEntry `json:"entries"`
	Total   int                  `json:"total"`
}

type ModerationDecisionResponse struct {
	UserID int64  `json:"user_id"`
	Status string `json:"status"`
}

type TOTPSetupResponse struct {
	Secret    string `json:"secret"`
	OTPURL    string `json:"otp_url"`
	QRDataURL string `json:"qr_data_url"`
}

type TOTPVerifyRequest struct {
	Secret string `json:"secret"`
	Code   string `json:"code"`
}
