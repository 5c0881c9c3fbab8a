package identity

import (
	"strings"

	"github.com/chainsafe/land-registry-session/pkg/role"
)

// VerificationStatus is the backend review state of a user record
type VerificationStatus string

const (
	StatusPending  VerificationStatus = "pending"
	StatusAccepted VerificationStatus = "accepted"
	StatusRejected VerificationStatus = "rejected"
)

// UnmarshalText normalizes the status to lowercase
func (s *VerificationStatus) UnmarshalText(text []byte) error {
	*s = VerificationStatus(strings.ToLower(strings.TrimSpace(string(text))))
	return nil
}

// User is the backend identity record of a wallet. Its role is the one declared
// by the backend and is independent of the on-chain role.
type User struct {
	ID                 string             `json:"id"`
	WalletAddress      string             `json:"walletAddress"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	Role               role.Role          `json:"role"`
	FullName           string             `json:"fullName,omitempty"`
	Email              string             `json:"email,omitempty"`
	Phone              string             `json:"phone,omitempty"`
	NationalID         string             `json:"nationalId,omitempty"`
	CreatedAt          string             `json:"createdAt,omitempty"`
}

// Result is the outcome of a backend lookup. User is nil when Exists is false.
type Result struct {
	Exists bool
	User   *User
}

// connectRequest is the body of POST /connect-wallet
type connectRequest struct {
	WalletAddress string `json:"walletAddress"`
}

// connectResponse is the envelope returned by POST /connect-wallet
type connectResponse struct {
	Success    bool   `json:"success"`
	UserExists bool   `json:"userExists"`
	Data       *User  `json:"data,omitempty"`
	Message    string `json:"message,omitempty"`
}
