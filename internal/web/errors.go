package web

import (
	"errors"

	"github.com/goserg/ratingengine/internal/bracket"
	"github.com/goserg/ratingengine/internal/policy"
	"github.com/goserg/ratingengine/internal/rating"
	"github.com/goserg/ratingengine/internal/service"
	"github.com/goserg/ratingengine/internal/storage"

	"github.com/gofiber/fiber/v2"
)

type errorKind struct {
	err    error
	kind   string
	status int
}

// errorKinds is checked in order, the first match wins.
var errorKinds = []errorKind{
	{err: policy.ErrForbidden, kind: "Forbidden", status: fiber.StatusForbidden},
	{err: bracket.ErrInsufficientParticipants, kind: "InsufficientParticipants", status: fiber.StatusBadRequest},
	{err: bracket.ErrAlreadyCompleted, kind: "AlreadyCompleted", status: fiber.StatusConflict},
	{err: bracket.ErrInvalidMatchState, kind: "InvalidMatchState", status: fiber.StatusConflict},
	{err: bracket.ErrUnknownCompetitor, kind: "UnknownCompetitor", status: fiber.StatusBadRequest},
	{err: bracket.ErrInvalidScoreOrdering, kind: "InvalidScoreOrdering", status: fiber.StatusBadRequest},
	{err: rating.ErrInvalidScoreOrdering, kind: "InvalidScoreOrdering", status: fiber.StatusBadRequest},
	{err: bracket.ErrUnknownMatch, kind: "UnknownMatch", status: fiber.StatusNotFound},
	{err: bracket.ErrDuplicateCompetitor, kind: "DuplicateCompetitor", status: fiber.StatusBadRequest},
	{err: bracket.ErrUnknownSeeding, kind: "UnknownSeeding", status: fiber.StatusBadRequest},
	{err: bracket.ErrInvalidCompetitor, kind: "InvalidCompetitor", status: fiber.StatusBadRequest},
	{err: rating.ErrSameCompetitor, kind: "SameCompetitor", status: fiber.StatusBadRequest},
	{err: rating.ErrMissingCompetitor, kind: "MissingCompetitor", status: fiber.StatusBadRequest},
	{err: service.ErrBracketExists, kind: "BracketExists", status: fiber.StatusConflict},
	{err: storage.ErrVersionConflict, kind: "VersionConflict", status: fiber.StatusConflict},
	{err: storage.ErrNotFound, kind: "NotFound", status: fiber.StatusNotFound},
	{err: service.ErrInvalidRequest, kind: "InvalidRequest", status: fiber.StatusBadRequest},
	{err: ErrValidation, kind: "Validation", status: fiber.StatusBadRequest},
}

func classify(err error) (string, int) {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.kind, k.status
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return "Request", fe.Code
	}
	return "Internal", fiber.StatusInternalServerError
}

type multierr interface {
	Unwrap() []error
}

func unwrap(err error) []error {
	var merr multierr
	if errors.As(err, &merr) {
		var errs []error
		for _, err := range merr.Unwrap() {
			errs = append(errs, unwrap(err)...)
		}
		return errs
	}
	return []error{err}
}

func (s *Server) handleError(c *fiber.Ctx, err error) error {
	kind, status := classify(err)
	resp := errorResponse{
		Error: err.Error(),
		Kind:  kind,
	}
	if status == fiber.StatusInternalServerError {
		s.log.WithError(err).WithField("path", c.Path()).Error("request failed")
		resp.Error = "internal error"
	} else {
		for _, e := range unwrap(err) {
			resp.Errors = append(resp.Errors, e.Error())
		}
	}
	return c.Status(status).JSON(resp)
}
