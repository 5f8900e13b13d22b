// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/danielhkuo/election-portal/models"
)

// Seed is the election setup file: registered voters and the candidate catalog.
type Seed struct {
	Voters []struct {
		ID        string `json:"id"`
		Email     string `json:"email"`
		RegNumber string `json:"reg_number"`
		Level     int    `json:"level"`
	} `json:"voters"`
	Candidates []struct {
		ID       string  `json:"id"`
		FullName string  `json:"full_name"`
		Position string  `json:"position"`
		Bio      string  `json:"bio"`
		ImageURL *string `json:"image_url"`
	} `json:"candidates"`
}

// ReadSeed decodes and validates a seed file.
func ReadSeed(r io.Reader) (Seed, error) {
	var seed Seed
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&seed); err != nil {
		return Seed{}, fmt.Errorf("failed to decode seed: %w", err)
	}

	for i, v := range seed.Voters {
		if strings.TrimSpace(v.Email) == "" || strings.TrimSpace(v.RegNumber) == "" {
			return Seed{}, fmt.Errorf("voter %d: email and reg_number are required", i)
		}
	}
	for i, c := range seed.Candidates {
		if strings.TrimSpace(c.FullName) == "" || strings.TrimSpace(c.Position) == "" {
			return Seed{}, fmt.Errorf("candidate %d: full_name and position are required", i)
		}
	}
	return seed, nil
}

// Import writes the seed into the store. positionKey must be the same
// normalization the voting engine uses. Rows whose id already exists are
// skipped, as are voters whose reg_number is already registered, so importing
// the same file twice is harmless.
func (s *Store) Import(ctx context.Context, seed Seed, positionKey func(string) string) error {
	var errs []error

	for _, v := range seed.Voters {
		id := v.ID
		if id == "" {
			id = uuid.NewString()
		}
		err := s.CreateVoter(ctx, models.Voter{
			ID:        id,
			Email:     strings.TrimSpace(v.Email),
			RegNumber: strings.TrimSpace(v.RegNumber),
			Level:     v.Level,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("voter %s: %w", v.RegNumber, err))
		}
	}

	for i, c := range seed.Candidates {
		id := c.ID
		if id == "" {
			id = uuid.NewString()
		}
		position := strings.TrimSpace(c.Position)
		err := s.CreateCandidate(ctx, models.Candidate{
			ID:          id,
			FullName:    strings.TrimSpace(c.FullName),
			Position:    position,
			PositionKey: positionKey(position),
			Bio:         c.Bio,
			ImageURL:    c.ImageURL,
			SortOrder:   i + 1,
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("candidate %s: %w", c.FullName, err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}

	slog.Info("seed imported", "voters", len(seed.Voters), "candidates", len(seed.Candidates))
	return nil
}
