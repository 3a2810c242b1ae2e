package models

// User is the authenticated viewer as supplied by the session provider.
type User struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar,omitempty"`
}

// AsHost turns the viewer into the host summary stored on a new meeting.
func (u User) AsHost() Host {
	return Host{ID: u.ID, Nickname: u.Nickname, Avatar: u.Avatar}
}
