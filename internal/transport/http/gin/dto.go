package httpgin

import (
	"time"

	"github.com/google/uuid"
	"github.com/stagepass/stagepass/internal/domain"
)

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FullName    string `json:"full_name" binding:"required"`
	IsOrganizer bool   `json:"is_organizer"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token   string          `json:"token"`
	Profile ProfileResponse `json:"profile"`
}

type ProfileResponse struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	FullName           string    `json:"full_name"`
	AvatarURL          string    `json:"avatar_url,omitempty"`
	IsOrganizer        bool      `json:"is_organizer"`
	CompanyName        string    `json:"company_name,omitempty"`
	CompanyDescription string    `json:"company_description,omitempty"`
	CompanyWebsite     string    `json:"company_website,omitempty"`
}

type UpdateProfileRequest struct {
	FullName           string `json:"full_name" binding:"required"`
	AvatarURL          string `json:"avatar_url"`
	IsOrganizer        bool   `json:"is_organizer"`
	CompanyName        string `json:"company_name"`
	CompanyDescription string `json:"company_description"`
	CompanyWebsite     string `json:"company_website"`
}

type CreateBookingRequest struct {
	SeatCount int `json:"seat_count" binding:"required,min=1,max=10"`
}

type BookingResponse struct {
	BookingID   uuid.UUID `json:"booking_id"`
	EventID     uuid.UUID `json:"event_id"`
	SeatCount   int       `json:"seat_count"`
	TotalCents  int       `json:"total_cents"`
	Status      string    `json:"status"`
	BookingDate time.Time `json:"booking_date"`
}

type CreateEventRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	EventDate   string     `json:"event_date" binding:"required"`
	EventTime   string     `json:"event_time" binding:"required"`
	Venue       string     `json:"venue" binding:"required"`
	City        string     `json:"city" binding:"required"`
	PriceStart  int        `json:"price_start_cents" binding:"min=0"`
	PriceEnd    *int       `json:"price_end_cents"`
	Capacity    int        `json:"capacity" binding:"required,gt=0"`
	CategoryID  *uuid.UUID `json:"category_id"`
	ArtistID    *uuid.UUID `json:"artist_id"`
	ImageURL    string     `json:"image_url"`
}

type UpdateEventRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	EventDate   string `json:"event_date" binding:"required"`
	EventTime   string `json:"event_time" binding:"required"`
	Venue       string `json:"venue" binding:"required"`
	City        string `json:"city" binding:"required"`
	PriceStart  int    `json:"price_start_cents" binding:"min=0"`
	PriceEnd    *int   `json:"price_end_cents"`
	ImageURL    string `json:"image_url"`
}

type SaveArtistRequest struct {
	Name        string      `json:"name" binding:"required"`
	Profession  string      `json:"profession" binding:"required"`
	Bio         string      `json:"bio"`
	ImageURL    string      `json:"image_url"`
	CategoryIDs []uuid.UUID `json:"category_ids"`
}

type AddPortfolioItemRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	MediaURL    string `json:"media_url" binding:"required,url"`
	MediaType   string `json:"media_type" binding:"required,oneof=image video link"`
}

type AvailabilityResponse struct {
	EventID        uuid.UUID `json:"event_id"`
	AvailableSeats int       `json:"available_seats"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func toProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ID:                 p.ID,
		Email:              p.Email,
		FullName:           p.FullName,
		AvatarURL:          p.AvatarURL,
		IsOrganizer:        p.IsOrganizer,
		CompanyName:        p.CompanyName,
		CompanyDescription: p.CompanyDescription,
		CompanyWebsite:     p.CompanyWebsite,
	}
}

func toBookingResponse(b *domain.Booking) BookingResponse {
	return BookingResponse{
		BookingID:   b.ID,
		EventID:     b.EventID,
		SeatCount:   b.SeatCount,
		TotalCents:  b.TotalCents,
		Status:      string(b.Status),
		BookingDate: b.BookingDate,
	}
}

func parseEventDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
