package api

import (
	"context"
	"encoding/json"
	"net/http"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
	"github.com/gorilla/mux"
	"github.com/grpc-ecosystem/grpc-gateway/runtime"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	sdk "github.com/pushchain/tl-lottery/types"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 16

// errBadRequest marks malformed input detected by the API itself.
var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...interface{}) error {
	return errors.Wrapf(errBadRequest, format, args...)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// httpStatus maps module errors through their gRPC code.
func httpStatus(err error) int {
	if errors.Is(err, errBadRequest) {
		return http.StatusBadRequest
	}
	code := status.Code(err)
	if code == codes.Unknown {
		return http.StatusInternalServerError
	}
	return runtime.HTTPStatusFromCode(code)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := httpStatus(err)
	resp := ErrorResponse{Error: err.Error()}
	if !errors.Is(err, errBadRequest) {
		resp.Codespace, resp.Code, _ = errorsmod.ABCIInfo(err, false)
	}
	if code >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Msg("request failed")
	}
	writeJSON(w, code, resp)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return badRequest("invalid request body: %s", err)
	}
	return nil
}

func parseAddress(field, s string) (sdk.Address, error) {
	addr, err := sdk.ParseAddress(s)
	if err != nil {
		return sdk.Address{}, badRequest("%s: %s", field, err)
	}
	return addr, nil
}

func parseAmount(s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(s)
	if !ok {
		return math.Int{}, badRequest("amount %q is not an integer", s)
	}
	return amount, nil
}

func pathUint(r *http.Request, name string) (uint64, error) {
	v, err := cast.ToUint64E(mux.Vars(r)[name])
	if err != nil {
		return 0, badRequest("%s: %s", name, err)
	}
	return v, nil
}

func pathAddress(r *http.Request, name string) (sdk.Address, error) {
	return parseAddress(name, mux.Vars(r)[name])
}

// query runs fn against committed state and writes its result.
func (s *Server) query(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context) (interface{}, error)) {
	var data interface{}
	err := s.node.Query(r.Context(), func(ctx context.Context) error {
		var err error
		data, err = fn(ctx)
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, QueryResponse{
		Data:   data,
		Height: s.node.LastHeader().Height,
		Time:   s.node.Clock().Now(),
	})
}

// deliver executes fn as a new block on behalf of sender and writes the receipt.
func (s *Server) deliver(w http.ResponseWriter, r *http.Request, op string, sender sdk.Address, fn func(ctx context.Context) (interface{}, error)) {
	receipt, err := s.node.Deliver(r.Context(), op, sender, fn)
	if err != nil {
		code := httpStatus(err)
		codespace, abciCode, _ := errorsmod.ABCIInfo(err, false)
		writeJSON(w, code, ErrorResponse{
			Error:     err.Error(),
			Codespace: codespace,
			Code:      abciCode,
			Height:    receipt.Height,
		})
		return
	}
	writeJSON(w, http.StatusOK, TxResponse{Receipt: receipt})
}
