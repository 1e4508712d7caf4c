package types

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/holiman/uint256"

	sdk "github.com/pushchain/tl-lottery/types"
)

// MsgServer is the state changing surface of the lottery.
type MsgServer interface {
	DepositTL(context.Context, *MsgDepositTL) (*MsgDepositTLResponse, error)
	WithdrawTL(context.Context, *MsgWithdrawTL) (*MsgWithdrawTLResponse, error)
	BuyTicket(context.Context, *MsgBuyTicket) (*MsgBuyTicketResponse, error)
	CollectTicketRefund(context.Context, *MsgCollectTicketRefund) (*MsgCollectTicketRefundResponse, error)
	RevealRndNumber(context.Context, *MsgRevealRndNumber) (*MsgRevealRndNumberResponse, error)
	CollectTicketPrize(context.Context, *MsgCollectTicketPrize) (*MsgCollectTicketPrizeResponse, error)
}

// MsgDepositTL moves Amount TL from the sender into escrow. The sender must
// have approved the lottery module address for at least Amount.
type MsgDepositTL struct {
	Sender sdk.Address `json:"sender"`
	Amount math.Int    `json:"amount"`
}

type MsgDepositTLResponse struct {
	Balance math.Int `json:"balance"`
}

// MsgWithdrawTL moves Amount TL out of escrow back to the sender.
type MsgWithdrawTL struct {
	Sender sdk.Address `json:"sender"`
	Amount math.Int    `json:"amount"`
}

type MsgWithdrawTLResponse struct {
	Balance math.Int `json:"balance"`
}

// MsgBuyTicket buys a ticket of the current round.
type MsgBuyTicket struct {
	Sender     sdk.Address `json:"sender"`
	Commitment Hash        `json:"commitment"`
}

type MsgBuyTicketResponse struct {
	TicketId uint64 `json:"ticket_id"`
	Round    uint64 `json:"round"`
}

// MsgCollectTicketRefund forfeits an unrevealed ticket for half its price.
type MsgCollectTicketRefund struct {
	Sender   sdk.Address `json:"sender"`
	TicketId uint64      `json:"ticket_id"`
}

type MsgCollectTicketRefundResponse struct {
	Refund math.Int `json:"refund"`
}

// MsgRevealRndNumber opens the commitment of a ticket.
type MsgRevealRndNumber struct {
	Sender   sdk.Address  `json:"sender"`
	TicketId uint64       `json:"ticket_id"`
	Secret   *uint256.Int `json:"secret"`
}

type MsgRevealRndNumberResponse struct{}

// MsgCollectTicketPrize credits the prize of a revealed ticket to escrow.
type MsgCollectTicketPrize struct {
	Sender   sdk.Address `json:"sender"`
	TicketId uint64      `json:"ticket_id"`
}

type MsgCollectTicketPrizeResponse struct {
	Prize math.Int `json:"prize"`
}

func validSender(sender sdk.Address) error {
	if sender.IsZero() {
		return errorsmod.Wrap(ErrInvalidAddress, "sender cannot be the zero address")
	}
	return nil
}

func validAmount(amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return errorsmod.Wrap(ErrInvalidAmount, "amount must be a non-negative integer")
	}
	return nil
}

func (msg *MsgDepositTL) ValidateBasic() error {
	if err := validSender(msg.Sender); err != nil {
		return err
	}
	return validAmount(msg.Amount)
}

func (msg *MsgWithdrawTL) ValidateBasic() error {
	if err := validSender(msg.Sender); err != nil {
		return err
	}
	return validAmount(msg.Amount)
}

func (msg *MsgBuyTicket) ValidateBasic() error {
	if err := validSender(msg.Sender); err != nil {
		return err
	}
	if msg.Commitment.IsZero() {
		return errorsmod.Wrap(ErrInvalidCommitment, "commitment cannot be empty")
	}
	return nil
}

func (msg *MsgCollectTicketRefund) ValidateBasic() error {
	return validSender(msg.Sender)
}

func (msg *MsgRevealRndNumber) ValidateBasic() error {
	if err := validSender(msg.Sender); err != nil {
		return err
	}
	if msg.Secret == nil {
		return errorsmod.Wrap(ErrCommitmentMismatch, "secret is required")
	}
	return nil
}

func (msg *MsgCollectTicketPrize) ValidateBasic() error {
	return validSender(msg.Sender)
}
