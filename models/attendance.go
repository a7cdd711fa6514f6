package models

import "time"

// Attendance approval statuses.
const (
	AttendancePending  = "pending"
	AttendanceApproved = "approved"
	AttendanceDeclined = "declined"
)

// AttendanceRecord is a worker's on-site check-in tied to a deal.
// Created by the worker, approved by the contractor, and read-only
// input to the ranking engine thereafter.
type AttendanceRecord struct {
	ID          string    `bson:"id" json:"id"`
	DealID      string    `bson:"dealId" json:"dealId"`
	WorkerID    string    `bson:"workerId" json:"workerId"`
	Date        string    `bson:"date" json:"date"` // YYYY-MM-DD
	CheckedInAt time.Time `bson:"checkedInAt" json:"checkedInAt"`
	LocationGeo GeoPoint  `bson:"locationGeo" json:"locationGeo"`
	Status      string    `bson:"status" json:"status"`
}
