// SPDX-License-Identifier: GPL-3.0-only

package handlers

const (
	lastSeenDateLayout = "2006-01-02"
	sightingDateLayout = "2006-01-02T15:04"
)

type SearchResult struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Gender       string `json:"gender"`
	LastSeen     string `json:"last_seen"`
	LastSeenDate string `json:"last_seen_date"`
	Region       string `json:"region"`
	Description  string `json:"description"`
	PhotoURL     string `json:"photo_url"`
	ReporterName string `json:"reporter_name"`
}
