package directory

import "time"

type Employee struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Position     string    `json:"position"`
	Department   string    `json:"department"`
	JoinDate     time.Time `json:"joinDate"`
	IsActive     bool      `json:"isActive"`
	ProfilePhoto string    `json:"profilePhoto,omitempty"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FullName is used for calendar event titles and report rows.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

type ListFilter struct {
	Search     string
	Department string
	ActiveOnly bool
	Limit      int
	Offset     int
}
