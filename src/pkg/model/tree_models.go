package model

import "time"

// TreeInfo contains basic information about a saved tree snapshot.
type TreeInfo struct {
	ID        int
	Name      string
	NodeCount int
	Updated   time.Time
}
