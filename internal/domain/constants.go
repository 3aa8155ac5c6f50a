package domain

const (
	RoleAdmin = "ADMIN"
	RoleHR    = "HR"
	RoleStaff = "STAFF"
)

const (
	ActionCheckIn  = "check-in"
	ActionCheckOut = "check-out"
)

const (
	SourceLocation = "location"
	SourceIP       = "ip"
)

const (
	RecordStatusSuccess = "success"
	RecordStatusFailed  = "failed"
)

const (
	GPSStatusConverted = "converted"
	GPSStatusPending   = "pending"
)

const (
	LeaveStatusPending  = "PENDING"
	LeaveStatusApproved = "APPROVED"
	LeaveStatusRejected = "REJECTED"
)

// SettingCheckInDistanceLimit is the system_settings key for the default
// geofence radius in meters. Admin-editable within [MinDistanceLimitM, MaxDistanceLimitM].
const SettingCheckInDistanceLimit = "checkin_distance_limit_m"

const (
	MinDistanceLimitM     = 50
	MaxDistanceLimitM     = 2000
	DefaultDistanceLimitM = 500
)

// HeadquartersName is the seeded fallback geofence for staff with no assigned office.
const HeadquartersName = "Headquarters"
