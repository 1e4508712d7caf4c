package types

import (
	errorsmod "cosmossdk.io/errors"
	"google.golang.org/grpc/codes"
)

// Error codes for the tltoken module
const (
	BaseErrorCode uint32 = 1
)

var (
	ErrInvalidAddress        = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+1, codes.InvalidArgument, "invalid address")
	ErrInvalidAmount         = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+2, codes.InvalidArgument, "invalid amount")
	ErrInsufficientFunds     = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+3, codes.FailedPrecondition, "transfer amount exceeds balance")
	ErrInsufficientAllowance = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+4, codes.FailedPrecondition, "insufficient allowance")
	ErrInvalidGenesis        = errorsmod.RegisterWithGRPCCode(ModuleName, BaseErrorCode+5, codes.InvalidArgument, "invalid genesis state")
)
