// Package service holds the business rules that sit between the HTTP
// handlers and the repositories.
//
// Every mutation of an owned entity runs the same gates in the same order:
// parse the identifier, validate the payload, load the entity, compare its
// owner with the requester, then write. The first failing gate decides the
// error and nothing after it runs.
package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/lalith-99/vidstream/internal/apperr"
	"github.com/lalith-99/vidstream/internal/events"
	"github.com/lalith-99/vidstream/internal/models"
	"github.com/lalith-99/vidstream/internal/validation"
)

// parseID is the first gate. what names the identifier in the error
// ("comment" -> "invalid comment id").
func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return uuid.Nil, apperr.InvalidIdentifier(what)
	}
	return id, nil
}

func validate(in any) error {
	if err := validation.Struct(in); err != nil {
		var msgs []string
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			msgs = verrs.Messages()
		}
		return apperr.Validation(err.Error(), msgs...)
	}
	return nil
}

// owned is satisfied by pointers to entities that record their owner.
type owned[E any] interface {
	*E
	OwnedBy() uuid.UUID
}

// authorizeOwner loads an entity and checks that requester owns it.
func authorizeOwner[E any, P owned[E]](
	ctx context.Context,
	entity string,
	id, requester uuid.UUID,
	find func(context.Context, uuid.UUID) (*E, error),
	denied string,
) (*E, error) {
	if err := requireIdentity(requester); err != nil {
		return nil, err
	}

	e, err := find(ctx, id)
	if err != nil {
		return nil, apperr.Persistence("failed to load "+entity, err)
	}
	if e == nil {
		return nil, apperr.NotFound(entity)
	}
	if P(e).OwnedBy() != requester {
		return nil, apperr.Unauthorized(denied)
	}
	return e, nil
}

func requireIdentity(requester uuid.UUID) error {
	if requester == uuid.Nil {
		return apperr.Unauthenticated("authentication required")
	}
	return nil
}

// Paging turns raw query parameters into a PageRequest.
type Paging struct {
	DefaultLimit int
	MaxLimit     int
}

// DefaultPaging is page size 10, capped at 100.
func DefaultPaging() Paging {
	return Paging{DefaultLimit: 10, MaxLimit: 100}
}

// Parse applies defaults for absent values, rejects non-numeric or
// non-positive ones and caps limit at MaxLimit.
func (p Paging) Parse(rawPage, rawLimit string) (models.PageRequest, error) {
	req := models.PageRequest{Page: 1, Limit: p.DefaultLimit}

	if rawPage != "" {
		n, err := strconv.Atoi(rawPage)
		if err != nil || n < 1 {
			return req, apperr.Validation("page must be a positive integer")
		}
		req.Page = n
	}
	if rawLimit != "" {
		n, err := strconv.Atoi(rawLimit)
		if err != nil || n < 1 {
			return req, apperr.Validation("limit must be a positive integer")
		}
		req.Limit = min(n, p.MaxLimit)
	}
	return req, nil
}

func orNop(pub events.Publisher) events.Publisher {
	if pub == nil {
		return events.Nop{}
	}
	return pub
}
