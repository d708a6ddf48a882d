package models

// Item is one gallery entry built from a database row
type Item struct {
	Id          string  `json:"id"`
	Image       string  `json:"image"`
	Caption     string  `json:"caption"`
	Status      string  `json:"status"`
	Date        *string `json:"date"`
	CreatedTime string  `json:"created_time"`
}

type FeedResponse struct {
	Items []Item `json:"items"`
}

// ErrorResponse is returned with a 500 when building the feed fails
type ErrorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint"`
}
