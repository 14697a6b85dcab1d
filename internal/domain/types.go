package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Seats-per-booking policy bounds.
const (
	MinSeatsPerBooking = 1
	MaxSeatsPerBooking = 10
)

type MediaType string

const (
	MediaImage MediaType = "image"
	MediaVideo MediaType = "video"
	MediaLink  MediaType = "link"
)

// Portfolio upload limits per artist.
const (
	MaxPortfolioImages = 3
	MaxPortfolioVideos = 3
)

type Event struct {
	ID             uuid.UUID
	Title          string
	Description    string
	EventDate      time.Time
	EventTime      string
	Venue          string
	City           string
	PriceStart     int // cents
	PriceEnd       *int
	Capacity       int
	AvailableSeats int
	OrganizerID    uuid.UUID
	CategoryID     *uuid.UUID
	ArtistID       *uuid.UUID
	ImageURL       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// EventSummary is the listing shape: an event joined with its category name.
type EventSummary struct {
	Event
	CategoryName string
}

type Booking struct {
	ID             uuid.UUID
	EventID        uuid.UUID
	UserID         uuid.UUID
	SeatCount      int
	TotalCents     int
	Status         BookingStatus
	IdempotencyKey string
	BookingDate    time.Time
	CreatedAt      time.Time
}

// BookingWithEvent is a booking joined with the event fields a
// "my bookings" listing needs.
type BookingWithEvent struct {
	Booking
	EventTitle string
	EventDate  time.Time
	Venue      string
	City       string
}

type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

type Artist struct {
	ID            uuid.UUID
	Name          string
	Profession    string
	Bio           string
	Rating        float64
	ImageURL      string
	CategoryNames []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type PortfolioItem struct {
	ID          uuid.UUID
	ArtistID    uuid.UUID
	Title       string
	Description string
	MediaURL    string
	MediaType   MediaType
	CreatedAt   time.Time
}

// MediaCounts is the per-type portfolio usage for an artist,
// checked against the upload limits.
type MediaCounts struct {
	Images int
	Videos int
}

type Profile struct {
	ID                 uuid.UUID
	Email              string
	FullName           string
	AvatarURL          string
	IsOrganizer        bool
	CompanyName        string
	CompanyDescription string
	CompanyWebsite     string
	PasswordHash       string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
