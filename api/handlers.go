package api

import (
	"context"
	"net/http"
	"time"

	"github.com/spf13/cast"

	lotterytypes "github.com/pushchain/tl-lottery/x/lottery/types"
)

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleStatus handles GET /api/v1/status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	header := s.node.LastHeader()
	now := s.node.Clock().Now()

	resp := StatusResponse{
		Height:    header.Height,
		BlockTime: header.Time.Format(time.RFC3339),
		Now:       now.Format(time.RFC3339),
		DevMode:   s.clock != nil,
	}
	err := s.node.Query(r.Context(), func(ctx context.Context) error {
		purchase, err := s.node.QueryServer.IsPurchaseActive(ctx, &lotterytypes.QueryIsPurchaseActiveRequest{})
		if err != nil {
			return err
		}
		reveal, err := s.node.QueryServer.IsRevealActive(ctx, &lotterytypes.QueryIsRevealActiveRequest{})
		if err != nil {
			return err
		}
		resp.PurchaseActive, resp.RevealActive = purchase.Active, reveal.Active

		// before round zero there is no lottery number
		no, err := s.node.QueryServer.LotteryNo(ctx, &lotterytypes.QueryLotteryNoRequest{Timestamp: now.Unix()})
		if err == nil {
			resp.LotteryNo = no.LotteryNo
		}
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleParams handles GET /api/v1/params
func (s *Server) handleParams(w http.ResponseWriter, r *http.Request) {
	s.query(w, r, func(ctx context.Context) (interface{}, error) {
		return s.node.QueryServer.Params(ctx, &lotterytypes.QueryParamsRequest{})
	})
}

// handleLotteryNo handles GET /api/v1/lottery-no?timestamp=<unix>
// Without a timestamp the node clock is used.
func (s *Server) handleLotteryNo(w http.ResponseWriter, r *http.Request) {
	ts := s.node.Clock().Now().Unix()
	if raw := r.URL.Query().Get("timestamp"); raw != "" {
		v, err := cast.ToInt64E(raw)
		if err != nil {
			s.writeError(w, badRequest("timestamp: %s", err))
			return
		}
		ts = v
	}

	s.query(w, r, func(ctx context.Context) (interface{}, error) {
		return s.node.QueryServer.LotteryNo(ctx, &lotterytypes.QueryLotteryNoRequest{Timestamp: ts})
	})
}

// handleIsPurchaseActive handles GET /api/v1/purchase-active
func (s *Server) handleIsPurchaseActive(w http.ResponseWriter, r *http.Request) {
	s.query(w, r, func(ctx context.Context) (interface{}, error) {
		return s.node.QueryServer.IsPurchaseActive(ctx, &lotterytypes.QueryIsPurchaseActiveRequest{})
	})
}

// handleIsRevealActive handles GET /api/v1/reveal-active
func (s *Server) handleIsRevealActive(w http.ResponseWriter, r *http.Request) {
	s.query(w, r, func(ctx context.Context) (interface{}, error) {
		return s.node.QueryServer.IsRevealActive(ctx, &lotterytypes.QueryIsRevealActiveRequest{})
	})
}

// handleBalance handles GET /api/v1/balances/{address}
func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	owner, err := pathAddress(r, "address")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.query(w, r, func(ctx context.Context) (interface{}, error) {
		return s.node.QueryServer.Balance(ctx, &lotterytypes.QueryBalanceRequest{Owner: owner})
	})
}

// handleDeposit handles POST /api/v1/deposit
func (s *Server) handleDeposit(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	sender, err := parseAddress("from", req.From)
	if err != nil {
		s.writeError(w, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.deliver(w, r, "deposit_tl", sender, func(ctx context.Context) (interface{}, error) {
		return s.node.MsgServer.DepositTL(ctx, &lotterytypes.MsgDepositTL{Sender: sender, Amount: amount})
	})
}

// handleWithdraw handles POST /api/v1/withdraw
func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req amountRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	sender, err := parseAddress("from", req.From)
	if err != nil {
		s.writeError(w, err)
		return
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.deliver(w, r, "withdraw_tl", sender, func(ctx context.Context) (interface{}, error) {
		return s.node.MsgServer.WithdrawTL(ctx, &lotterytypes.MsgWithdrawTL{Sender: sender, Amount: amount})
	})
}

// handleBuyTicket handles POST /api/v1/tickets
func (s *Server) handleBuyTicket(w http.ResponseWriter, r *http.Request) {
	var req buyTicketRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	sender, err := parseAddress("from", req.From)
	if err != nil {
		s.writeError(w, err)
		return
	}
	commitment, err := lotterytypes.ParseHash(req.Commitment)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.deliver(w, r, "buy_ticket", sender, func(ctx context.Context) (interface{}, error) {
		return s.node.MsgServer.BuyTicket(ctx, &lotterytypes.MsgBuyTicket{Sender: sender, Commitment: commitment})
	})
}

// handleTicket handles GET /api/v1/tickets/{id}
func (s *Server) handleTicket(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.query(w, r, func(ctx context.Context) (interface{}, error) {
		return s.node.QueryServer.Ticket(ctx, &lotterytypes.QueryTicketRequest{TicketId: id})
	})
}

// handleOwnerOf handles GET /api/v1/tickets/{id}/owner
func (s *Server) handleOwnerOf(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.query(w, r, func(ctx context.Context) (interface{}, error) {
		return s.node.QueryServer.OwnerOf(ctx, &lotterytypes.QueryOwnerOfRequest{TicketId: id})
	})
}

// handleRefund handles POST /api/v1/tickets/{id}/refund
func (s *Server) handleRefund(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req senderRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	sender, err := parseAddress("from", req.From)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.deliver(w, r, "collect_ticket_refund", sender, func(ctx context.Context) (interface{}, error) {
		return s.node.MsgServer.CollectTicketRefund(ctx, &lotterytypes.MsgCollectTicketRefund{Sender: sender, TicketId: id})
	})
}

// handleReveal handles POST /api/v1/tickets/{id}/reveal
func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req revealRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	sender, err := parseAddress("from", req.From)
	if err != nil {
		s.writeError(w, err)
		return
	}
	secret, err := lotterytypes.ParseSecret(req.Secret)
	if err != nil {
		s.writeError(w, badRequest("%s", err))
		return
	}

	s.deliver(w, r, "reveal_rnd_number", sender, func(ctx context.Context) (interface{}, error) {
		return s.node.MsgServer.RevealRndNumber(ctx, &lotterytypes.MsgRevealRndNumber{Sender: sender, TicketId: id, Secret: secret})
	})
}

// handleCheckIfTicketWon handles GET /api/v1/tickets/{id}/prize
func (s *Server) handleCheckIfTicketWon(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.query(w, r, func(ctx context.Context) (interface{}, error) {
		return s.node.QueryServer.CheckIfTicketWon(ctx, &lotterytypes.QueryCheckIfTicketWonRequest{TicketId: id})
	})
}

// handleCollectPrize handles POST /api/v1/tickets/{id}/prize
func (s *Server) handleCollectPrize(w http.ResponseWriter, r *http.Request) {
	id, err := pathUint(r, "id")
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req senderRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	sender, err := parseAddress("from", req.From)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.deliver(w, r, "collect_ticket_prize", sender, func(ctx context.Context) (interface{}, error) {
		return s.node.MsgServer.CollectTicketPrize(ctx, &lotterytypes.MsgCollectTicketPrize{Sender: sender, TicketId: id})
	})
}

// handleCommitment handles POST /api/v1/commitment. It only hashes; nothing
// is stored, and the secret should not be sent to an untrusted node.
func (s *Server) handleCommitment(w http.ResponseWriter, r *http.Request) {
	var req commitmentRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	owner, err := parseAddress("owner", req.Owner)
	if err != nil {
		s.writeError(w, err)
		return
	}
	secret, err := lotterytypes.ParseSecret(req.Secret)
	if err != nil {
		s.writeError(w, badRequest("%s", err))
		return
	}
	writeJSON(w, http.StatusOK, commitmentResponse{Commitment: lotterytypes.ComputeCommitment(secret, owner).String()})
}

// handleRound handles GET /api/v1/rounds/{round}
func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	round, err := pathUint(r, "round")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.query(w, r, func(ctx context.Context) (interface{}, error) {
		return s.node.QueryServer.Round(ctx, &lotterytypes.QueryRoundRequest{Round: round})
	})
}

// handleTotalCollected handles GET /api/v1/rounds/{round}/total
func (s *Server) handleTotalCollected(w http.ResponseWriter, r *http.Request) {
	round, err := pathUint(r, "round")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.query(w, r, func(ctx context.Context) (interface{}, error) {
		return s.node.QueryServer.TotalLotteryMoneyCollected(ctx, &lotterytypes.QueryTotalLotteryMoneyCollectedRequest{Round: round})
	})
}

// handleLastOwnedTicket handles GET /api/v1/rounds/{round}/owners/{address}/last
func (s *Server) handleLastOwnedTicket(w http.ResponseWriter, r *http.Request) {
	round, err := pathUint(r, "round")
	if err != nil {
		s.writeError(w, err)
		return
	}
	owner, err := pathAddress(r, "address")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.query(w, r, func(ctx context.Context) (interface{}, error) {
		return s.node.QueryServer.LastOwnedTicketNo(ctx, &lotterytypes.QueryLastOwnedTicketNoRequest{Owner: owner, Round: round})
	})
}

// handleIthOwnedTicket handles GET /api/v1/rounds/{round}/owners/{address}/tickets/{index}
func (s *Server) handleIthOwnedTicket(w http.ResponseWriter, r *http.Request) {
	round, err := pathUint(r, "round")
	if err != nil {
		s.writeError(w, err)
		return
	}
	index, err := pathUint(r, "index")
	if err != nil {
		s.writeError(w, err)
		return
	}
	owner, err := pathAddress(r, "address")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.query(w, r, func(ctx context.Context) (interface{}, error) {
		return s.node.QueryServer.IthOwnedTicketNo(ctx, &lotterytypes.QueryIthOwnedTicketNoRequest{Owner: owner, Round: round, Index: index})
	})
}

// handleIthWinningTicket handles GET /api/v1/rounds/{round}/winners/{index}
func (s *Server) handleIthWinningTicket(w http.ResponseWriter, r *http.Request) {
	round, err := pathUint(r, "round")
	if err != nil {
		s.writeError(w, err)
		return
	}
	index, err := pathUint(r, "index")
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.query(w, r, func(ctx context.Context) (interface{}, error) {
		return s.node.QueryServer.IthWinningTicket(ctx, &lotterytypes.QueryIthWinningTicketRequest{Round: round, Index: index})
	})
}
