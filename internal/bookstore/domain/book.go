package domain

import "time"

type Book struct {
	ID            int64
	Title         string
	Author        string
	ISBN          string
	Price         float64
	PublishedDate time.Time
	Genre         string
	InStock       bool
}
