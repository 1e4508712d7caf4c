package api

import (
	"context"
	"net/http"

	"cosmossdk.io/math"
)

type tokenInfo struct {
	Symbol      string   `json:"symbol"`
	TotalSupply math.Int `json:"total_supply"`
}

type tokenAmount struct {
	Amount math.Int `json:"amount"`
}

// handleTokenInfo handles GET /api/v1/token
func (s *Server) handleTokenInfo(w http.ResponseWriter, r *http.Request) {
	s.query(w, r, func(ctx context.Context) (interface{}, error) {
		symbol, err := s.node.TokenKeeper.Symbol(ctx)
		if err != nil {
			return nil, err
		}
		supply, err := s.node.TokenKeeper.TotalSupply(ctx)
		if err != nil {
			return nil, err
		}
		return tokenInfo{Symbol: symbol, TotalSupply: supply}, nil
	})
}

// handleTokenBalance handles GET /api/v1/token/balances/{address}
func (s *Server) handleTokenBalance(w http.ResponseWriter, r *http.Request) {
	owner, err := pathAddress(r, "address")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.query(w, r, func(ctx context.Context) (interface{}, error) {
		bal, err := s.node.TokenKeeper.BalanceOf(ctx, owner)
		return tokenAmount{Amount: bal}, err
	})
}

// handleTokenAllowance handles GET /api/v1/token/allowances/{owner}/{spender}
func (s *Server) handleTokenAllowance(w http.ResponseWriter, r *http.Request) {
	owner, err := pathAddress(r, "owner")
	if err != nil {
		s.writeError(w, err)
		return
	}
	spender, err := pathAddress(r, "spender")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.query(w, r, func(ctx context.Context) (interface{}, error) {
		allowance, err := s.node.TokenKeeper.Allowance(ctx, owner, spender)
		return tokenAmount{Amount: allowance}, err
	})
}

// handleTokenApprove handles POST /api/v1/token/approve
func (s *Server) handleTokenApprove(w http.ResponseWriter, r *http.Request) {
	var req approveRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	owner, err := parseAddress("from", req.From)
	if err != nil {
		s.writeError(w, err)
		return
	}
	spender, err := parseAddress("spender", req.Spender)
	if err != nil {
		s.writeError(w, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.deliver(w, r, "approve", owner, func(ctx context.Context) (interface{}, error) {
		if err := s.node.TokenKeeper.Approve(ctx, owner, spender, amount); err != nil {
			return nil, err
		}
		return tokenAmount{Amount: amount}, nil
	})
}

// handleTokenTransfer handles POST /api/v1/token/transfer
func (s *Server) handleTokenTransfer(w http.ResponseWriter, r *http.Request) {
	var req transferRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	from, err := parseAddress("from", req.From)
	if err != nil {
		s.writeError(w, err)
		return
	}
	to, err := parseAddress("to", req.To)
	if err != nil {
		s.writeError(w, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.deliver(w, r, "transfer", from, func(ctx context.Context) (interface{}, error) {
		if err := s.node.TokenKeeper.Transfer(ctx, from, to, amount); err != nil {
			return nil, err
		}
		return tokenAmount{Amount: amount}, nil
	})
}
