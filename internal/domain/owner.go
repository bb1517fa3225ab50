package domain

// IsOwner resolves job ownership: the employer id wins when present,
// otherwise a legacy job belongs to the caller whose display name matches.
func IsOwner(job *Job, caller Identity) bool {
	if job == nil || !caller.IsAuthenticated() {
		return false
	}
	if job.EmployerID != nil && *job.EmployerID != "" {
		return *job.EmployerID == caller.ID
	}
	return caller.Name != "" && job.EmployerName == caller.Name
}
