package domain

// Authorization predicates. They are pure so usecases can evaluate them against
// freshly loaded records.

func IsAdmin(c *Caller) bool {
	return c != nil && c.Role == RoleAdmin
}

func IsCandidate(c *Caller) bool {
	return c != nil && c.Role == RoleCandidate
}

func IsRecruiterOrAdmin(c *Caller) bool {
	return c != nil && (c.Role == RoleRecruiter || c.Role == RoleAdmin)
}

func OwnsJob(c *Caller, job *Job) bool {
	return c != nil && job != nil && c.ID != "" && c.ID == job.PostedBy
}

// CanManageJob allows the job's poster or any admin.
func CanManageJob(c *Caller, job *Job) bool {
	return IsAdmin(c) || OwnsJob(c, job)
}

// CanReviewApplication takes the job the application points at.
func CanReviewApplication(c *Caller, job *Job) bool {
	return IsAdmin(c) || OwnsJob(c, job)
}

// CallerOf builds the identity view of a stored user.
func CallerOf(u *User) *Caller {
	return &Caller{ID: u.ID, Username: u.Username, Role: u.Role}
}
