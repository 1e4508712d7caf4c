package types

import (
	errorsmod "cosmossdk.io/errors"
	"google.golang.org/grpc/codes"
)

// Error codes for the lottery module
const (
	BaseErrorCode uint32 = 1
)

var (
	ErrWrongPhase          = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+1, codes.FailedPrecondition, "operation not allowed in the current phase")
	ErrInsufficientBalance = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+2, codes.FailedPrecondition, "insufficient escrow balance")
	ErrTransferFailed      = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+3, codes.Aborted, "token transfer failed")
	ErrNotTicketOwner      = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+4, codes.PermissionDenied, "caller does not own the ticket")
	ErrUnknownTicket       = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+5, codes.NotFound, "unknown ticket")
	ErrCommitmentMismatch  = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+6, codes.InvalidArgument, "revealed secret does not match the commitment")
	ErrAlreadyRevealed     = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+7, codes.FailedPrecondition, "ticket already revealed")
	ErrAlreadyRefunded     = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+8, codes.FailedPrecondition, "ticket already refunded")
	ErrAlreadyResolved     = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+9, codes.FailedPrecondition, "ticket already revealed or refunded")
	ErrAlreadyClaimed      = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+10, codes.FailedPrecondition, "prize already claimed")
	ErrTicketNotRevealed   = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+11, codes.FailedPrecondition, "ticket was not revealed")
	ErrRoundNotClosed      = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+12, codes.FailedPrecondition, "round is not closed yet")
	ErrInvalidTime         = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+13, codes.OutOfRange, "time precedes the first round")
	ErrInvalidAmount       = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+14, codes.InvalidArgument, "invalid amount")
	ErrInvalidCommitment   = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+15, codes.InvalidArgument, "invalid commitment")
	ErrInvalidParams       = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+16, codes.InvalidArgument, "invalid params")
	ErrInvalidGenesis      = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+17, codes.InvalidArgument, "invalid genesis state")
	ErrInvalidAddress      = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+18, codes.InvalidArgument, "invalid address")
)
