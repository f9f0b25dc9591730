package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/superapp-lab/backend/pkg/errorx"
	"github.com/superapp-lab/backend/pkg/xcontext"
)

type response struct {
	Code  int64  `json:"code"`
	Error string `json:"error,omitempty"`
	Data  any    `json:"data,omitempty"`
}

func newResponse(data any) response {
	return response{Code: 0, Data: data}
}

func newErrorResponse(err error) response {
	errx := errorx.Error{}
	if errors.As(err, &errx) {
		return response{
			Code:  int64(errx.Code),
			Error: errx.Message,
		}
	}

	return response{
		Code:  int64(errorx.Unknown.Code),
		Error: errorx.Unknown.Message,
	}
}

func httpStatusOf(err error) int {
	errx := errorx.Error{}
	if !errors.As(err, &errx) {
		return http.StatusInternalServerError
	}

	switch errx.Code {
	case errorx.BadRequest, errorx.AlreadyExists, errorx.Unavailable,
		errorx.InsufficientFunds, errorx.InvalidAmount, errorx.SelfTarget,
		errorx.AlreadyJoined, errorx.TournamentFull:
		return http.StatusBadRequest
	case errorx.Unauthenticated:
		return http.StatusUnauthorized
	case errorx.PermissionDenied:
		return http.StatusForbidden
	case errorx.NotFound:
		return http.StatusNotFound
	case errorx.TooManyRequests:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// writeResponse writes the envelope for the request outcome. Handlers that
// produce neither a response nor an error (websocket upgrades) write nothing.
func writeResponse(ctx context.Context) {
	w := xcontext.HTTPWriter(ctx)
	if w == nil {
		return
	}

	if err := xcontext.Error(ctx); err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(httpStatusOf(err))
		if werr := writeJSON(w, newErrorResponse(err)); werr != nil {
			xcontext.Logger(ctx).Errorf("cannot write the error response: %v", werr)
		}
		return
	}

	if resp := xcontext.Response(ctx); resp != nil {
		if err := writeJSON(w, newResponse(resp)); err != nil {
			xcontext.Logger(ctx).Errorf("cannot write the response: %v", err)
		}
	}
}

func writeJSON(w http.ResponseWriter, resp any) error {
	w.Header().Set("Content-Type", "application/json")
	b, err := json.Marshal(resp)
	if err != nil {
		return err
	}

	if _, err := w.Write(b); err != nil {
		return err
	}

	return nil
}
