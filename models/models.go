package models

import "time"

// Homework is one submission record from the review API.
type Homework struct {
	ID              int64  `json:"id"`
	Name            string `json:"homework_name"`
	Status          string `json:"status"`
	ReviewerComment string `json:"reviewer_comment"`
	LessonName      string `json:"lesson_name"`
	DateUpdated     string `json:"date_updated"`
}

// Notification is a message delivered to the chat.
type Notification struct {
	ChatID    string    `json:"chat_id"`
	MessageID int       `json:"message_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"time_stamp"`
}

// Snapshot is the poll loop state as seen from outside the loop.
type Snapshot struct {
	Timestamp   int64     `json:"timestamp"`
	LastMessage string    `json:"last_message"`
	LastStatus  string    `json:"last_status"`
	LastError   string    `json:"last_error,omitempty"`
	LastPollAt  time.Time `json:"last_poll_at"`
	Polls       int       `json:"polls"`
	Failures    int       `json:"failures"`
	Sent        int       `json:"sent"`
}
