package domain

import "time"

// Application represents a CV submitted through the public intake form.
// Applications have no ownership dimension; they are visible only to the
// operator.
type Application struct {
	ID            string
	CandidateName string
	Email         string
	Resume        string
	Score         *int64
	Summary       *string
	CreatedAt     time.Time
}

// SubmitApplicationRequest holds parameters for a CV submission.
type SubmitApplicationRequest struct {
	CandidateName string `json:"candidate_name"`
	Email         string `json:"email"`
	Resume        string `json:"resume"`
}

// Validate checks that the submission is well-formed.
func (r *SubmitApplicationRequest) Validate() error {
	if r.CandidateName == "" {
		return ErrValidation("candidate_name is required")
	}
	if r.Email == "" {
		return ErrValidation("email is required")
	}
	if r.Resume == "" {
		return ErrValidation("resume is required")
	}
	return nil
}
