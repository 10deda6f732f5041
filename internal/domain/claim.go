package domain

// ClaimStatus is the review state of an insurance claim. Claims are owned by
// another service; only APPROVED claims may be paid.
type ClaimStatus string

const (
	ClaimSubmitted   ClaimStatus = "SUBMITTED"
	ClaimUnderReview ClaimStatus = "UNDER_REVIEW"
	ClaimApproved    ClaimStatus = "APPROVED"
	ClaimRejected    ClaimStatus = "REJECTED"
	ClaimClosed      ClaimStatus = "CLOSED"
)

// Claim is the read-only view of an insurance claim needed to pay it.
type Claim struct {
	ID            int64
	Status        ClaimStatus
	ClaimedAmount MoneyAmount
}

func (c *Claim) IsApproved() bool {
	return c.Status == ClaimApproved
}
