package organizer

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// Rejection paths return before touching storage, so a nil store is
// enough to exercise them.

func validInput() CreateEventInput {
	return CreateEventInput{
		OrganizerID: uuid.New(),
		IsOrganizer: true,
		Title:       "Open Mic",
		EventDate:   time.Now().AddDate(0, 1, 0),
		EventTime:   "20:00",
		Venue:       "The Basement",
		City:        "Lisbon",
		PriceStart:  1500,
		Capacity:    80,
	}
}

func TestCreateEvent_Rejections(t *testing.T) {
	higher := 2000
	lower := 1000

	tests := []struct {
		name    string
		mutate  func(*CreateEventInput)
		wantErr error
	}{
		{
			name:    "not an organizer",
			mutate:  func(in *CreateEventInput) { in.IsOrganizer = false },
			wantErr: ErrNotOrganizer,
		},
		{
			name:    "empty title",
			mutate:  func(in *CreateEventInput) { in.Title = "" },
			wantErr: ErrInvalidEvent,
		},
		{
			name:    "empty venue",
			mutate:  func(in *CreateEventInput) { in.Venue = "" },
			wantErr: ErrInvalidEvent,
		},
		{
			name:    "zero capacity",
			mutate:  func(in *CreateEventInput) { in.Capacity = 0 },
			wantErr: ErrInvalidEvent,
		},
		{
			name:    "negative capacity",
			mutate:  func(in *CreateEventInput) { in.Capacity = -5 },
			wantErr: ErrInvalidEvent,
		},
		{
			name:    "negative price",
			mutate:  func(in *CreateEventInput) { in.PriceStart = -1 },
			wantErr: ErrInvalidEvent,
		},
		{
			name: "price range inverted",
			mutate: func(in *CreateEventInput) {
				in.PriceStart = higher
				in.PriceEnd = &lower
			},
			wantErr: ErrInvalidEvent,
		},
		{
			name: "date in the past",
			mutate: func(in *CreateEventInput) {
				in.EventDate = time.Now().AddDate(0, 0, -2)
			},
			wantErr: ErrInvalidEvent,
		},
	}

	svc := New(nil)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := svc.CreateEvent(context.Background(), in)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUpdateEvent_Rejections(t *testing.T) {
	svc := New(nil)

	err := svc.UpdateEvent(context.Background(), UpdateEventInput{
		EventID:     uuid.New(),
		OrganizerID: uuid.New(),
		Title:       "",
		Venue:       "Somewhere",
		City:        "Porto",
	})
	require.ErrorIs(t, err, ErrInvalidEvent)

	err = svc.UpdateEvent(context.Background(), UpdateEventInput{
		EventID:     uuid.New(),
		OrganizerID: uuid.New(),
		Title:       "Show",
		Venue:       "Somewhere",
		City:        "Porto",
		PriceStart:  -100,
	})
	require.ErrorIs(t, err, ErrInvalidEvent)
}
