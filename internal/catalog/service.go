package catalog

import (
	"context"

	apperrors "cuecafe/pkg/errors"
	"cuecafe/pkg/logger"
	"cuecafe/pkg/model"
)

type Store interface {
	VenueByName(ctx context.Context, name string) (*model.Venue, error)
	AllGames(ctx context.Context) ([]model.Game, error)
	GameByID(ctx context.Context, id string) (*model.Game, error)
	ConfirmedBookings(ctx context.Context, gameID, date string) ([]model.Booking, error)
}

type Service struct {
	store     Store
	venueName string
	openHour  int
	closeHour int
	log       *logger.Logger
}

func NewService(store Store, venueName string, openHour, closeHour int, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		venueName: venueName,
		openHour:  openHour,
		closeHour: closeHour,
		log:       log,
	}
}

// Venue looks up the single venue by its configured name. No retry.
func (s *Service) Venue(ctx context.Context) (*model.Venue, error) {
	venue, err := s.store.VenueByName(ctx, s.venueName)
	if err != nil {
		s.log.Error("Venue lookup failed", "venue", s.venueName, "error", err)
		return nil, err
	}
	if venue == nil {
		return nil, apperrors.NotFound("Venue")
	}
	return venue, nil
}

// Games returns the full game list, or an empty list on any failure.
func (s *Service) Games(ctx context.Context) []model.Game {
	games, err := s.store.AllGames(ctx)
	if err != nil {
		s.log.Error("Game list fetch failed", "error", err)
		return []model.Game{}
	}
	if games == nil {
		return []model.Game{}
	}
	return games
}

func (s *Service) GameByID(ctx context.Context, id string) (*model.Game, error) {
	game, err := s.store.GameByID(ctx, id)
	if err != nil {
		s.log.Error("Game lookup failed", "game_id", id, "error", err)
		return nil, err
	}
	if game == nil {
		return nil, apperrors.NotFound("Game")
	}
	return game, nil
}

// AvailableSlots fetches confirmed bookings for (game, date) and subtracts
// them from the daily grid. Any fetch failure yields an empty list, matching
// the rest of the read surface.
func (s *Service) AvailableSlots(ctx context.Context, gameID, date string) []model.Slot {
	bookings, err := s.store.ConfirmedBookings(ctx, gameID, date)
	if err != nil {
		s.log.Error("Slot fetch failed", "game_id", gameID, "date", date, "error", err)
		return []model.Slot{}
	}
	return BuildGrid(s.openHour, s.closeHour, OccupiedKeys(bookings))
}
