package set_attendance

// SetAttendanceRequest HTTP request model
type SetAttendanceRequest struct {
	Attendance string `json:"attendance"` // "present" | "absent"
}

// AttendanceResponse HTTP response model
type AttendanceResponse struct {
	ID         int64  `json:"id"`
	Attendance string `json:"attendance"`
}
