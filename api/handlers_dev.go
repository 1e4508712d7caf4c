package api

import (
	"net/http"
	"time"

	"github.com/spf13/cast"

	"github.com/pushchain/tl-lottery/indexer/db"
)

// handleReceipts handles GET /api/v1/receipts?sender=&operation=&from_height=&failed=&limit=&offset=
func (s *Server) handleReceipts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	f := db.ReceiptFilter{
		Sender:    q.Get("sender"),
		Operation: q.Get("operation"),
	}
	var err error
	if f.FromHeight, err = cast.ToInt64E(orZero(q.Get("from_height"))); err != nil {
		s.writeError(w, badRequest("from_height: %s", err))
		return
	}
	if f.Limit, err = cast.ToIntE(orZero(q.Get("limit"))); err != nil {
		s.writeError(w, badRequest("limit: %s", err))
		return
	}
	if f.Offset, err = cast.ToIntE(orZero(q.Get("offset"))); err != nil {
		s.writeError(w, badRequest("offset: %s", err))
		return
	}
	if raw := q.Get("failed"); raw != "" {
		if f.OnlyFailed, err = cast.ToBoolE(raw); err != nil {
			s.writeError(w, badRequest("failed: %s", err))
			return
		}
	}

	receipts, err := s.receipts.Receipts(f)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, QueryResponse{
		Data:   receipts,
		Height: s.node.LastHeader().Height,
		Time:   s.node.Clock().Now(),
	})
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

func (s *Server) writeTime(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, timeResponse{Now: s.clock.Now(), Offset: s.clock.Offset().String()})
}

// handleDevTime handles GET /api/v1/dev/time
func (s *Server) handleDevTime(w http.ResponseWriter, r *http.Request) {
	s.writeTime(w)
}

// handleIncreaseTime handles POST /api/v1/dev/increase-time
func (s *Server) handleIncreaseTime(w http.ResponseWriter, r *http.Request) {
	var req increaseTimeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	now, err := s.clock.Advance(time.Duration(req.Seconds) * time.Second)
	if err != nil {
		s.writeError(w, badRequest("%s", err))
		return
	}
	s.logger.Info().Int64("seconds", req.Seconds).Time("now", now).Msg("clock advanced")
	s.writeTime(w)
}

// handleSetTime handles POST /api/v1/dev/set-time
func (s *Server) handleSetTime(w http.ResponseWriter, r *http.Request) {
	var req setTimeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	now, err := s.clock.Set(time.Unix(req.Timestamp, 0))
	if err != nil {
		s.writeError(w, badRequest("%s", err))
		return
	}
	s.logger.Info().Time("now", now).Msg("clock set")
	s.writeTime(w)
}
