package cron

// Response represents a successful daily diary run
type Response struct {
	Success bool   `json:"success"`
	Title   string `json:"title"`
	Date    string `json:"date"`
}
