package tablestore

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"cuecafe/pkg/client"
	apperrors "cuecafe/pkg/errors"
	"cuecafe/pkg/logger"
	"cuecafe/pkg/model"
)

// Client talks to the hosted relational-table REST facade. Every request
// carries the same static bearer/apikey pair; row-level rules on the remote
// side decide what the anon role may touch.
type Client struct {
	http *client.HttpClient
	log  *logger.Logger
}

func New(baseURL, apiKey string, timeout time.Duration, log *logger.Logger) *Client {
	httpClient := client.NewHttpClient(baseURL, timeout).WithHeaders(map[string]string{
		"Authorization": "Bearer " + apiKey,
		"apikey":        apiKey,
	})
	return &Client{http: httpClient, log: log}
}

// returnRepresentation asks the facade to echo the written row back, which is
// how inserts and patches learn server-generated fields.
var returnRepresentation = map[string]string{"Prefer": "return=representation"}

func (c *Client) selectRows(ctx context.Context, table string, query url.Values, target any) error {
	resp, err := c.http.GET(ctx, "/rest/v1/"+table+"?"+query.Encode())
	if err != nil {
		return apperrors.Remote(fmt.Sprintf("failed to query %s", table), err)
	}
	if !resp.IsSuccess() {
		return apperrors.Remote(fmt.Sprintf("query on %s rejected: %s", table, client.GetErrorMessage(resp)), nil)
	}
	if err := resp.DecodeJSON(target); err != nil {
		return apperrors.Remote(fmt.Sprintf("could not decode %s rows", table), err)
	}
	return nil
}

func (c *Client) insertRow(ctx context.Context, table string, body any, target any) error {
	resp, err := c.http.POSTWithHeaders(ctx, "/rest/v1/"+table, body, returnRepresentation)
	if err != nil {
		return apperrors.Remote(fmt.Sprintf("failed to insert into %s", table), err)
	}
	if !resp.IsSuccess() {
		return apperrors.Remote(fmt.Sprintf("insert into %s rejected: %s", table, client.GetErrorMessage(resp)), nil)
	}
	if target != nil {
		if err := resp.DecodeJSON(target); err != nil {
			return apperrors.Remote(fmt.Sprintf("could not decode inserted %s row", table), err)
		}
	}
	return nil
}

func (c *Client) patchRows(ctx context.Context, table string, query url.Values, body any, target any) error {
	headers := map[string]string(nil)
	if target != nil {
		headers = returnRepresentation
	}
	resp, err := c.http.PATCHWithHeaders(ctx, "/rest/v1/"+table+"?"+query.Encode(), body, headers)
	if err != nil {
		return apperrors.Remote(fmt.Sprintf("failed to patch %s", table), err)
	}
	if !resp.IsSuccess() {
		return apperrors.Remote(fmt.Sprintf("patch on %s rejected: %s", table, client.GetErrorMessage(resp)), nil)
	}
	if target != nil {
		if err := resp.DecodeJSON(target); err != nil {
			return apperrors.Remote(fmt.Sprintf("could not decode patched %s row", table), err)
		}
	}
	return nil
}

func eq(column, value string) url.Values {
	q := url.Values{}
	q.Set(column, "eq."+value)
	return q
}

// --- users ---

// FindUserByEmail returns nil without error when no row matches.
func (c *Client) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var users []model.User
	if err := c.selectRows(ctx, "users", eq("email", email), &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (c *Client) InsertUser(ctx context.Context, user model.User) (*model.User, error) {
	var rows []model.User
	if err := c.insertRow(ctx, "users", user, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.Remote("insert into users returned no row", nil)
	}
	return &rows[0], nil
}

func (c *Client) UpdateUser(ctx context.Context, id string, patch map[string]any) (*model.User, error) {
	var rows []model.User
	if err := c.patchRows(ctx, "users", eq("id", id), patch, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.Remote("patch on users returned no row", nil)
	}
	return &rows[0], nil
}

// TouchLastLogin records the login time. Callers treat a failure here as
// non-fatal.
func (c *Client) TouchLastLogin(ctx context.Context, id string) error {
	patch := map[string]any{"last_login": time.Now().UTC().Format(time.RFC3339)}
	return c.patchRows(ctx, "users", eq("id", id), patch, nil)
}

// --- venues / games ---

func (c *Client) VenueByName(ctx context.Context, name string) (*model.Venue, error) {
	var venues []model.Venue
	if err := c.selectRows(ctx, "venues", eq("name", name), &venues); err != nil {
		return nil, err
	}
	if len(venues) == 0 {
		return nil, nil
	}
	return &venues[0], nil
}

func (c *Client) AllGames(ctx context.Context) ([]model.Game, error) {
	q := url.Values{}
	q.Set("select", "*")
	var games []model.Game
	if err := c.selectRows(ctx, "games", q, &games); err != nil {
		return nil, err
	}
	return games, nil
}

func (c *Client) GameByID(ctx context.Context, id string) (*model.Game, error) {
	var games []model.Game
	if err := c.selectRows(ctx, "games", eq("id", id), &games); err != nil {
		return nil, err
	}
	if len(games) == 0 {
		return nil, nil
	}
	return &games[0], nil
}

// --- bookings ---

func (c *Client) ConfirmedBookings(ctx context.Context, gameID, date string) ([]model.Booking, error) {
	q := url.Values{}
	q.Set("game_id", "eq."+gameID)
	q.Set("booking_date", "eq."+date)
	q.Set("status", "eq."+model.BookingStatusConfirmed)

	var bookings []model.Booking
	if err := c.selectRows(ctx, "bookings", q, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) InsertBooking(ctx context.Context, booking model.Booking) (*model.Booking, error) {
	var rows []model.Booking
	if err := c.insertRow(ctx, "bookings", booking, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.Remote("insert into bookings returned no row", nil)
	}
	return &rows[0], nil
}

func (c *Client) BookingsByUser(ctx context.Context, userID string) ([]model.Booking, error) {
	q := url.Values{}
	q.Set("user_id", "eq."+userID)
	q.Set("order", "booking_date.desc")

	var bookings []model.Booking
	if err := c.selectRows(ctx, "bookings", q, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (c *Client) PatchBooking(ctx context.Context, id string, patch map[string]any) error {
	return c.patchRows(ctx, "bookings", eq("id", id), patch, nil)
}
