package models

// Host is the summary of the user who created a meeting.
type Host struct {
	ID           string  `bson:"id" json:"id"`
	Nickname     string  `bson:"nickname" json:"nickname"`
	Avatar       string  `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Rating       float64 `bson:"rating" json:"rating"`             // average evaluation score
	MeetingCount int     `bson:"meetingCount" json:"meetingCount"` // meetings hosted so far
}

type Location struct {
	Name      string   `bson:"name" json:"name" validate:"required,max=100"`
	Latitude  *float64 `bson:"latitude,omitempty" json:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `bson:"longitude,omitempty" json:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (l Location) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}
