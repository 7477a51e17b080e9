package admin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/arunvm123/bookingportal/web-client/model"
)

const (
	MessageFieldsRequired = "All fields are required."
	MessageInvalidSeats   = "Total seats must be a positive whole number."
	MessageInvalidDate    = "Date must be a valid date and time."
)

// ErrInvalidForm wraps every client-side form rejection.
var ErrInvalidForm = errors.New("invalid event form")

// dateLayouts lists accepted inputs. Zone-less inputs are read in the
// caller's location.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// FormError carries the message shown next to the form.
type FormError struct {
	Message string
}

func (e *FormError) Error() string {
	return e.Message
}

func (e *FormError) Unwrap() error {
	return ErrInvalidForm
}

// ParseForm checks the draft and converts it into a request. The date is
// normalised to UTC.
func ParseForm(form model.EventForm, loc *time.Location) (model.CreateEventRequest, error) {
	title := strings.TrimSpace(form.Title)
	location := strings.TrimSpace(form.Location)
	date := strings.TrimSpace(form.Date)
	seats := strings.TrimSpace(form.TotalSeats)

	if title == "" || location == "" || date == "" || seats == "" {
		return model.CreateEventRequest{}, &FormError{Message: MessageFieldsRequired}
	}

	totalSeats, err := strconv.Atoi(seats)
	if err != nil || totalSeats < 1 {
		return model.CreateEventRequest{}, &FormError{Message: MessageInvalidSeats}
	}

	when, err := parseDate(date, loc)
	if err != nil {
		return model.CreateEventRequest{}, &FormError{Message: MessageInvalidDate}
	}

	return model.CreateEventRequest{
		Title:      title,
		Location:   location,
		Date:       when.UTC(),
		TotalSeats: totalSeats,
	}, nil
}

func parseDate(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}
