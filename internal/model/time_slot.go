package model

import "time"

// TimeSlot is a named, fixed daily interval (e.g. "08:00"–"10:00")
// reusable across dates.  Start and end times are stored as "HH:MM" text
// because slots are wall-clock intervals, not instants.  Slots are soft
// deleted like rooms.
//
// Fields:
//  ID          – opaque UUID string.
//  StartTime   – "HH:MM" start of the interval.
//  EndTime     – "HH:MM" end of the interval.
//  Name        – display name (e.g. "Morning").
//  Description – optional free-text description.
//  IsActive    – soft-delete marker.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type TimeSlot struct {
	ID          string    // time_slots.id
	StartTime   string    // time_slots.start_time
	EndTime     string    // time_slots.end_time
	Name        string    // time_slots.name
	Description *string   // time_slots.description (nullable)
	IsActive    bool      // time_slots.is_active
	CreatedAt   time.Time // time_slots.created_at
	UpdatedAt   time.Time // time_slots.updated_at
}

// Interval renders the slot as "HH:MM-HH:MM" for display.
func (t TimeSlot) Interval() string {
	return t.StartTime + "-" + t.EndTime
}
