package entity

import "time"

type Notification struct {
	ID         string
	CustomerID string
	Title      string
	Message    string
	Read       bool
	CreatedAt  time.Time
}

// UnreadCount returns how many notifications have not been read yet.
func UnreadCount(ns []Notification) int {
	n := 0
	for _, x := range ns {
		if !x.Read {
			n++
		}
	}
	return n
}
