package types

import (
	"encoding/json"
	"fmt"

	sdk "github.com/pushchain/tl-lottery/types"
)

// TicketState only moves forward: Open to Refunded or Revealed, and
// Revealed to Claimed.
type TicketState int32

const (
	TicketStateOpen TicketState = iota
	TicketStateRefunded
	TicketStateRevealed
	TicketStateClaimed
)

var ticketStateNames = map[TicketState]string{
	TicketStateOpen:     "open",
	TicketStateRefunded: "refunded",
	TicketStateRevealed: "revealed",
	TicketStateClaimed:  "claimed",
}

func (s TicketState) String() string {
	if name, ok := ticketStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int32(s))
}

func (s TicketState) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

func (s *TicketState) UnmarshalJSON(bz []byte) error {
	var name string
	if err := json.Unmarshal(bz, &name); err != nil {
		return err
	}
	for state, n := range ticketStateNames {
		if n == name {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown ticket state %q", name)
}

// CanTransitionTo reports whether next is a legal successor of s.
func (s TicketState) CanTransitionTo(next TicketState) bool {
	switch s {
	case TicketStateOpen:
		return next == TicketStateRefunded || next == TicketStateRevealed
	case TicketStateRevealed:
		return next == TicketStateClaimed
	default:
		return false
	}
}

// WasRevealed is true for tickets that entered the draw.
func (s TicketState) WasRevealed() bool {
	return s == TicketStateRevealed || s == TicketStateClaimed
}

// Ticket is one purchased entry of a round.
type Ticket struct {
	Id          uint64      `json:"id"`
	Round       uint64      `json:"round"`
	Owner       sdk.Address `json:"owner"`
	Commitment  Hash        `json:"commitment"`
	State       TicketState `json:"state"`
	PurchasedAt int64       `json:"purchased_at"`
}

func (t Ticket) String() string {
	return fmt.Sprintf("ticket %d | round %d | owner %s | %s", t.Id, t.Round, t.Owner, t.State)
}

// ValidateBasic checks the fields of a stored ticket.
func (t Ticket) ValidateBasic() error {
	if t.Id == 0 {
		return fmt.Errorf("ticket id cannot be zero")
	}
	if t.Owner.IsZero() {
		return fmt.Errorf("ticket %d has no owner", t.Id)
	}
	if _, ok := ticketStateNames[t.State]; !ok {
		return fmt.Errorf("ticket %d has invalid state %d", t.Id, int32(t.State))
	}
	return nil
}
