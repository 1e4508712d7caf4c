package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// apiV1 prefixes every lottery route. Routes are registered on the root
// router so a method mismatch answers 405.
const apiV1 = "/api/v1"

// setupRoutes configures all HTTP routes for the API server
func (s *Server) setupRoutes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.logRequests)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.HandlerFor(s.node.Gatherer(), promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// Phase clock
	r.HandleFunc(apiV1+"/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/params", s.handleParams).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/lottery-no", s.handleLotteryNo).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/purchase-active", s.handleIsPurchaseActive).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/reveal-active", s.handleIsRevealActive).Methods(http.MethodGet)

	// Escrow
	r.HandleFunc(apiV1+"/balances/{address}", s.handleBalance).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/deposit", s.handleDeposit).Methods(http.MethodPost)
	r.HandleFunc(apiV1+"/withdraw", s.handleWithdraw).Methods(http.MethodPost)

	// Tickets
	r.HandleFunc(apiV1+"/tickets", s.handleBuyTicket).Methods(http.MethodPost)
	r.HandleFunc(apiV1+"/tickets/{id:[0-9]+}", s.handleTicket).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/tickets/{id:[0-9]+}/owner", s.handleOwnerOf).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/tickets/{id:[0-9]+}/refund", s.handleRefund).Methods(http.MethodPost)
	r.HandleFunc(apiV1+"/tickets/{id:[0-9]+}/reveal", s.handleReveal).Methods(http.MethodPost)
	r.HandleFunc(apiV1+"/tickets/{id:[0-9]+}/prize", s.handleCheckIfTicketWon).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/tickets/{id:[0-9]+}/prize", s.handleCollectPrize).Methods(http.MethodPost)
	r.HandleFunc(apiV1+"/commitment", s.handleCommitment).Methods(http.MethodPost)

	// Rounds
	r.HandleFunc(apiV1+"/rounds/{round:[0-9]+}", s.handleRound).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/rounds/{round:[0-9]+}/total", s.handleTotalCollected).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/rounds/{round:[0-9]+}/owners/{address}/last", s.handleLastOwnedTicket).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/rounds/{round:[0-9]+}/owners/{address}/tickets/{index:[0-9]+}", s.handleIthOwnedTicket).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/rounds/{round:[0-9]+}/winners/{index:[0-9]+}", s.handleIthWinningTicket).Methods(http.MethodGet)

	// TL token
	r.HandleFunc(apiV1+"/token", s.handleTokenInfo).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/token/balances/{address}", s.handleTokenBalance).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/token/allowances/{owner}/{spender}", s.handleTokenAllowance).Methods(http.MethodGet)
	r.HandleFunc(apiV1+"/token/approve", s.handleTokenApprove).Methods(http.MethodPost)
	r.HandleFunc(apiV1+"/token/transfer", s.handleTokenTransfer).Methods(http.MethodPost)

	if s.receipts != nil {
		r.HandleFunc(apiV1+"/receipts", s.handleReceipts).Methods(http.MethodGet)
	}

	if s.clock != nil {
		r.HandleFunc(apiV1+"/dev/time", s.handleDevTime).Methods(http.MethodGet)
		r.HandleFunc(apiV1+"/dev/increase-time", s.handleIncreaseTime).Methods(http.MethodPost)
		r.HandleFunc(apiV1+"/dev/set-time", s.handleSetTime).Methods(http.MethodPost)
	}

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug().Str("method", r.Method).Str("path", r.URL.Path).Msg("request")
		next.ServeHTTP(w, r)
	})
}
