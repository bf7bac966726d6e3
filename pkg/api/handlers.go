package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/matzehuels/treeflow/pkg/buildinfo"
	"github.com/matzehuels/treeflow/pkg/errors"
	"github.com/matzehuels/treeflow/pkg/hierarchy"
	pio "github.com/matzehuels/treeflow/pkg/io"
	"github.com/matzehuels/treeflow/pkg/observability"
	"github.com/matzehuels/treeflow/pkg/pipeline"
	"github.com/matzehuels/treeflow/pkg/tree"
	"github.com/matzehuels/treeflow/pkg/widget"
)

// NormalizeRequest is the body of POST /v1/normalize. Data holds records
// (an array of objects), a {columns, rows} table, or a {dimensions, freq}
// contingency table.
type NormalizeRequest struct {
	Data       json.RawMessage   `json:"data"`
	Options    hierarchy.Options `json:"options"`
	Dimensions []string          `json:"dimensions,omitempty"`
	Weight     string            `json:"weight,omitempty"`
	Widget     widget.Config     `json:"widget"`
}

// NormalizeResponse is the body of a successful normalize call. Tree is
// omitted when a payload was requested, since the payload embeds it.
type NormalizeResponse struct {
	Kind    string          `json:"kind"`
	Tree    *tree.Node      `json:"tree,omitempty"`
	Payload *widget.Payload `json:"payload,omitempty"`
	Stats   pipeline.Stats  `json:"stats"`
}

type errorBody struct {
	Code      errors.Code `json:"code"`
	Message   string      `json:"message"`
	RequestID string      `json:"request_id,omitempty"`
}

type healthBody struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleModes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]widget.Mode{"modes": widget.Modes})
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req NormalizeRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge, errors.Wrap(errors.ErrCodeInvalidFormat, err, "request body exceeds %d bytes", tooLarge.Limit))
			return
		}
		s.writeError(w, r, http.StatusBadRequest, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request"))
		return
	}

	var data bytes.Buffer
	if len(req.Data) == 0 || json.Compact(&data, req.Data) != nil || data.String() == "null" {
		s.writeError(w, r, 0, errors.New(errors.ErrCodeUnsupportedInput, "request has no data"))
		return
	}
	in, err := pio.DecodeInput(data.Bytes())
	if err != nil {
		s.writeError(w, r, 0, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), pipeline.Options{
		Data:       in,
		Dimensions: req.Dimensions,
		Weight:     req.Weight,
		Normalize:  req.Options,
		Widget:     req.Widget,
		Logger:     s.logger,
	})
	if err != nil {
		s.writeError(w, r, 0, err)
		return
	}

	resp := NormalizeResponse{Kind: res.Kind, Payload: res.Payload, Stats: res.Stats}
	if res.Payload == nil {
		resp.Tree = res.Tree
	}
	writeJSON(w, http.StatusOK, resp)
}

// StatusFor maps an error to an HTTP status by its category.
func StatusFor(err error) int {
	switch errors.CategoryOf(err) {
	case errors.CategoryConfiguration, errors.CategoryMissingField, errors.CategoryIO:
		return http.StatusBadRequest
	case errors.CategoryStructural:
		return http.StatusUnprocessableEntity
	case errors.CategoryUnsupportedInput:
		return http.StatusUnsupportedMediaType
	}
	return http.StatusInternalServerError
}

// writeError writes err as a JSON error body. A zero status is derived
// from the error category.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status == 0 {
		status = StatusFor(err)
	}
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	observability.HTTP().OnError(r.Context(), r.Method, r.URL.Path, err)
	s.logger.Warn("request failed", "id", RequestID(r.Context()), "code", code, "err", err)
	writeJSON(w, status, errorBody{
		Code:      code,
		Message:   errors.UserMessage(err),
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = pio.WriteJSON(w, v)
}
