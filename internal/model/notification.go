package model

type GetNotificationsRequest struct {
	Offset int `form:"offset" json:"offset"`
	Limit  int `form:"limit" json:"limit"`
}

type GetNotificationsResponse struct {
	Notifications []Notification `json:"notifications"`
}

type MarkNotificationReadRequest struct {
	NotificationID string `json:"notification_id"`
}

type MarkNotificationReadResponse struct{}

type MarkAllNotificationsReadRequest struct{}

type MarkAllNotificationsReadResponse struct{}

type GetUnreadNotificationCountRequest struct{}

type GetUnreadNotificationCountResponse struct {
	Count int64 `json:"count"`
}

type ServeNotificationRequest struct{}

type ServeNotificationResponse struct{}
