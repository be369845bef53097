package user

import "time"

// Profile is the subset of the externally owned profile row that billing
// reads or mirrors.
type Profile struct {
	UserID        int        `db:"user_id" json:"userId"`
	Email         string     `db:"email" json:"email"`
	FullName      string     `db:"full_name" json:"fullName"`
	PlanName      *string    `db:"plan_name" json:"planName,omitempty"`
	PlanExpiresAt *time.Time `db:"plan_expires_at" json:"planExpiresAt,omitempty"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}

// DisplayName falls back to the email when no name is on file.
func (p *Profile) DisplayName() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Email
}
