// Package swap - swap session state.
package swap

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role identifies which side of the swap this party plays.
type Role string

const (
	// RoleInitiator mints the secret and funds first.
	RoleInitiator Role = "initiator"

	// RoleParticipant funds against a secret hash chosen by the peer.
	RoleParticipant Role = "participant"
)

// State is the lifecycle state of a swap session.
type State string

const (
	StateCreated         State = "created"          // negotiated, nothing signed
	StateRefundValidated State = "refund_validated" // peer refund checked and co-signed refund in hand
	StateFunded          State = "funded"           // our funding tx handed to the broadcaster
	StateClaimed         State = "claimed"          // counter-escrow claimed with the secret
	StateRefunded        State = "refunded"         // escrow recovered via the refund path
	StateAborted         State = "aborted"          // abandoned before funding, free of cost
)

// stateTransitions enumerates the legal lifecycle moves. Funding is only
// reachable through refund validation: a party must hold a validated,
// co-signed refund before its funding transaction is safe to broadcast.
var stateTransitions = map[State][]State{
	StateCreated:         {StateRefundValidated, StateAborted},
	StateRefundValidated: {StateFunded, StateAborted},
	StateFunded:          {StateClaimed, StateRefunded},
}

// Session records one swap negotiation from this party's perspective. It is
// a plain value: builders never touch it, and persistence belongs to the
// storage layer.
type Session struct {
	ID    string
	Role  Role
	State State

	// Addresses are stored encoded; the chain registry supplies the
	// params to decode them.
	OwnAddress  string
	PeerAddress string

	// SecretHash is always known. Secret is set for the initiator from
	// the start and learned by the participant at claim time.
	SecretHash []byte
	Secret     []byte

	// Amount in the smallest unit, and the refund lock time agreed for
	// our escrow.
	Amount   uint64
	LockTime uint32

	// Serialized protocol transactions as they become available.
	FundingTxHex string
	RefundTxHex  string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewSession creates a session in the created state.
func NewSession(role Role, ownAddress, peerAddress string, amount uint64, secretHash []byte) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:          uuid.NewString(),
		Role:        role,
		State:       StateCreated,
		OwnAddress:  ownAddress,
		PeerAddress: peerAddress,
		SecretHash:  secretHash,
		Amount:      amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Transition moves the session to the next state, rejecting moves that
// violate the lifecycle. In particular, StateFunded is unreachable without
// passing through StateRefundValidated first.
func (s *Session) Transition(next State) error {
	for _, allowed := range stateTransitions[s.State] {
		if next == allowed {
			s.State = next
			s.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid session transition %s -> %s", s.State, next)
}

// SafeToFund reports whether this party's funding transaction may be handed
// to a broadcaster.
func (s *Session) SafeToFund() bool {
	return s.State == StateRefundValidated
}
