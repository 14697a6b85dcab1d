package httpgin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stagepass/stagepass/internal/auth"
	"github.com/stagepass/stagepass/internal/domain"
	"github.com/stagepass/stagepass/internal/metrics"
	postgresrepo "github.com/stagepass/stagepass/internal/repository/postgres"
	redisrepo "github.com/stagepass/stagepass/internal/repository/redis"
	"github.com/stagepass/stagepass/internal/service"
	"github.com/stagepass/stagepass/internal/service/accounts"
	"github.com/stagepass/stagepass/internal/service/artists"
	"github.com/stagepass/stagepass/internal/service/booking"
	"github.com/stagepass/stagepass/internal/service/catalog"
	"github.com/stagepass/stagepass/internal/service/organizer"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	tokens *auth.TokenManager,
	m *metrics.Metrics,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	if m != nil {
		r.Use(MetricsMiddleware(m))
	}
	for _, mw := range middlewares {
		if mw != nil {
			r.Use(mw)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health & metrics
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth
	r.POST("/auth/register", handleRegister(svcs))
	r.POST("/auth/login", handleLogin(svcs))

	// Public catalog
	r.GET("/events", handleListEvents(svcs))
	r.GET("/events/:id", handleGetEvent(svcs))
	r.GET("/events/:id/availability", handleGetAvailability(svcs))
	r.GET("/availability", handleListAvailability(svcs))
	r.GET("/categories", handleListCategories(svcs))

	r.GET("/artists", handleListArtists(svcs))
	r.GET("/artists/:id", handleGetArtist(svcs))
	r.GET("/artists/:id/portfolio", handleListPortfolio(svcs))
	r.GET("/artists/:id/portfolio/limits", handleMediaCounts(svcs))

	// Authenticated API
	authed := r.Group("/", AuthMiddleware(tokens))
	{
		authed.GET("/me", handleGetProfile(svcs))
		authed.PUT("/me", handleUpdateProfile(svcs))

		authed.POST("/events/:id/bookings", handleCreateBooking(svcs, idem))
		authed.GET("/bookings", handleListBookings(svcs))
		authed.GET("/bookings/:id", handleGetBooking(svcs))

		authed.POST("/artists", handleSaveArtist(svcs))
		authed.POST("/artists/:id/portfolio", handleAddPortfolioItem(svcs))

		org := authed.Group("/organizer")
		{
			org.POST("/events", handleCreateEvent(svcs))
			org.GET("/events", handleListOrganizerEvents(svcs))
			org.PUT("/events/:id", handleUpdateEvent(svcs))
		}
	}

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  Register profile
// @Param    req body  RegisterRequest true "payload"
// @Success  201 {object} AuthResponse
// @Failure  409 {object} ErrorResponse "email taken"
// @Router   /auth/register [post]
func handleRegister(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		p, token, err := svcs.Accounts.Register(c.Request.Context(), accounts.RegisterInput{
			Email:       req.Email,
			Password:    req.Password,
			FullName:    req.FullName,
			IsOrganizer: req.IsOrganizer,
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, AuthResponse{Token: token, Profile: toProfileResponse(p)})
	}
}

// @Summary  Login
// @Param    req body  LoginRequest true "payload"
// @Success  200 {object} AuthResponse
// @Failure  401 {object} ErrorResponse
// @Router   /auth/login [post]
func handleLogin(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		p, token, err := svcs.Accounts.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, AuthResponse{Token: token, Profile: toProfileResponse(p)})
	}
}

// @Summary  Current profile
// @Success  200 {object} ProfileResponse
// @Router   /me [get]
func handleGetProfile(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
			return
		}

		p, err := svcs.Accounts.Get(c.Request.Context(), userID)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toProfileResponse(p))
	}
}

// @Summary  Update current profile
// @Param    req body  UpdateProfileRequest true "payload"
// @Success  204
// @Router   /me [put]
func handleUpdateProfile(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
			return
		}

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		err := svcs.Accounts.Update(c.Request.Context(), accounts.UpdateInput{
			ID:                 userID,
			FullName:           req.FullName,
			AvatarURL:          req.AvatarURL,
			IsOrganizer:        req.IsOrganizer,
			CompanyName:        req.CompanyName,
			CompanyDescription: req.CompanyDescription,
			CompanyWebsite:     req.CompanyWebsite,
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// @Summary  List events
// @Param    search   query string false "free text"
// @Param    category query string false "category name"
// @Param    city     query string false "city"
// @Param    limit    query int    false "page size"
// @Param    offset   query int    false "offset"
// @Success  200 {array} domain.EventSummary
// @Router   /events [get]
func handleListEvents(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := postgresrepo.EventFilter{
			Search:   c.Query("search"),
			Category: c.Query("category"),
			City:     c.Query("city"),
			Limit:    parseIntDefault(c.Query("limit"), 50),
			Offset:   parseIntDefault(c.Query("offset"), 0),
		}

		events, err := svcs.Catalog.ListEvents(c.Request.Context(), f)
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, events, "public, max-age=15", true)
	}
}

// @Summary  Get event
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  200 {object} domain.EventSummary
// @Failure  404 {object} ErrorResponse
// @Router   /events/{id} [get]
func handleGetEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		e, err := svcs.Catalog.GetEvent(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, e, "public, max-age=60", true)
	}
}

// @Summary  Get seat availability
// @Description  Advisory figure for display. It may be stale the
// @Description  moment it is read; only a booking attempt decides.
// @Param    id  path  string  true  "Event ID (uuid)"
// @Success  200 {object} AvailabilityResponse
// @Router   /events/{id}/availability [get]
func handleGetAvailability(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		seats, err := svcs.Catalog.Availability(c.Request.Context(), eventID)
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, AvailabilityResponse{
			EventID:        eventID,
			AvailableSeats: seats,
		}, "public, max-age=5", true)
	}
}

// @Summary  Batch seat availability
// @Param    ids  query  string  true  "comma-separated event IDs"
// @Success  200 {object} map[string]int
// @Router   /availability [get]
func handleListAvailability(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.Split(c.Query("ids"), ",")
		ids := make([]uuid.UUID, 0, len(raw))
		for _, s := range raw {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			id, err := uuid.Parse(s)
			if err != nil {
				badRequest(c, "invalid event id: "+s)
				return
			}
			ids = append(ids, id)
		}

		avail, err := svcs.Catalog.ListAvailability(c.Request.Context(), ids)
		if err != nil {
			respondErr(c, err)
			return
		}

		out := make(map[string]int, len(avail))
		for id, seats := range avail {
			out[id.String()] = seats
		}

		c.JSON(http.StatusOK, out)
	}
}

// @Summary  List categories
// @Success  200 {array} domain.Category
// @Router   /categories [get]
func handleListCategories(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		cats, err := svcs.Catalog.ListCategories(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, cats, "public, max-age=300", true)
	}
}

// @Summary  Create booking (idempotent)
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body  CreateBookingRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} BookingResponse
// @Failure  400 {object} ErrorResponse "invalid seat count"
// @Failure  409 {object} ErrorResponse "sold out / idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /events/{id}/bookings [post]
func handleCreateBooking(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
			return
		}

		var req CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemBooking(eventID, idemKey)

			if payload, ok, _ := idem.GetResult(
				c.Request.Context(),
				idemStorageKey,
			); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(
					http.StatusCreated,
					"application/json; charset=utf-8",
					[]byte(payload),
				)
				return
			}

			locked, err := idem.AcquireLock(
				c.Request.Context(),
				idemStorageKey,
				60*time.Second,
			)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(
					c.Request.Context(),
					idemStorageKey,
				); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(
						http.StatusCreated,
						"application/json; charset=utf-8",
						[]byte(payload),
					)
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(
					http.StatusConflict,
					ErrorResponse{Error: "idempotency key in progress"},
				)
				return
			}
		}

		b, err := svcs.Booking.Submit(c.Request.Context(), booking.SubmitInput{
			EventID:        eventID,
			UserID:         userID,
			SeatCount:      req.SeatCount,
			IdempotencyKey: idemKey,
			RateLimitKey:   "user:" + userID.String(),
		})
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}

			var rl *booking.RateLimitedError
			if errors.As(err, &rl) {
				secs := int(rl.RetryAfter.Seconds()) + 1
				c.Header("Retry-After", strconv.Itoa(secs))
				c.JSON(http.StatusTooManyRequests, ErrorResponse{Error: "rate limited"})
				return
			}

			respondErr(c, err)
			return
		}

		resp := toBookingResponse(b)

		if idemStorageKey != "" && idem != nil {
			buf, _ := json.Marshal(resp)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(buf))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// @Summary  List own bookings
// @Success  200 {array} domain.BookingWithEvent
// @Router   /bookings [get]
func handleListBookings(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
			return
		}

		limit := parseIntDefault(c.Query("limit"), 50)
		offset := parseIntDefault(c.Query("offset"), 0)

		out, err := svcs.Booking.ListByUser(c.Request.Context(), userID, limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Get own booking
// @Param    id  path  string  true  "Booking ID (uuid)"
// @Success  200 {object} BookingResponse
// @Failure  404 {object} ErrorResponse
// @Router   /bookings/{id} [get]
func handleGetBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookingID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
			return
		}

		b, err := svcs.Booking.Get(c.Request.Context(), bookingID, userID)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, toBookingResponse(b))
	}
}

// @Summary  List artists
// @Param    search   query string false "free text"
// @Param    category query string false "category name"
// @Success  200 {array} domain.Artist
// @Router   /artists [get]
func handleListArtists(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		f := postgresrepo.ArtistFilter{
			Search:   c.Query("search"),
			Category: c.Query("category"),
			Limit:    parseIntDefault(c.Query("limit"), 50),
			Offset:   parseIntDefault(c.Query("offset"), 0),
		}

		out, err := svcs.Artists.List(c.Request.Context(), f)
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, out, "public, max-age=60", true)
	}
}

// @Summary  Get artist
// @Param    id  path  string  true  "Artist ID (uuid)"
// @Success  200 {object} domain.Artist
// @Failure  404 {object} ErrorResponse
// @Router   /artists/{id} [get]
func handleGetArtist(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		a, err := svcs.Artists.Get(c.Request.Context(), artistID)
		if err != nil {
			respondErr(c, err)
			return
		}

		writeJSONWithCache(c, http.StatusOK, a, "public, max-age=60", true)
	}
}

// @Summary  List artist portfolio
// @Param    id  path  string  true  "Artist ID (uuid)"
// @Success  200 {array} domain.PortfolioItem
// @Router   /artists/{id}/portfolio [get]
func handleListPortfolio(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		items, err := svcs.Artists.ListPortfolio(c.Request.Context(), artistID)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

// @Summary  Portfolio media usage
// @Description  How many images and videos the artist has uploaded,
// @Description  so clients can grey out the upload button at the limit.
// @Param    id  path  string  true  "Artist ID (uuid)"
// @Success  200 {object} domain.MediaCounts
// @Router   /artists/{id}/portfolio/limits [get]
func handleMediaCounts(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		mc, err := svcs.Artists.MediaCounts(c.Request.Context(), artistID)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, mc)
	}
}

// @Summary  Create or update own artist profile
// @Param    req body  SaveArtistRequest true "payload"
// @Success  201 {object} domain.Artist
// @Router   /artists [post]
func handleSaveArtist(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
			return
		}

		var req SaveArtistRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		a, err := svcs.Artists.Save(c.Request.Context(), artists.SaveInput{
			UserID:      userID,
			Name:        req.Name,
			Profession:  req.Profession,
			Bio:         req.Bio,
			ImageURL:    req.ImageURL,
			CategoryIDs: req.CategoryIDs,
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, a)
	}
}

// @Summary  Add portfolio item
// @Param    id  path  string  true  "Artist ID (uuid)"
// @Param    req body  AddPortfolioItemRequest true "payload"
// @Success  201 {object} domain.PortfolioItem
// @Failure  409 {object} ErrorResponse "media limit reached"
// @Router   /artists/{id}/portfolio [post]
func handleAddPortfolioItem(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
			return
		}

		var req AddPortfolioItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		item, err := svcs.Artists.AddPortfolioItem(c.Request.Context(), artists.AddPortfolioItemInput{
			ArtistID:    artistID,
			UserID:      userID,
			Title:       req.Title,
			Description: req.Description,
			MediaURL:    req.MediaURL,
			MediaType:   domain.MediaType(req.MediaType),
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, item)
	}
}

// @Summary  Create event
// @Param    req body  CreateEventRequest true "payload"
// @Success  201 {object} domain.Event
// @Failure  403 {object} ErrorResponse "not an organizer"
// @Router   /organizer/events [post]
func handleCreateEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
			return
		}

		var req CreateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		date, err := parseEventDate(req.EventDate)
		if err != nil {
			badRequest(c, "invalid event_date (YYYY-MM-DD)")
			return
		}

		e, err := svcs.Organizer.CreateEvent(c.Request.Context(), organizer.CreateEventInput{
			OrganizerID: userID,
			IsOrganizer: currentIsOrganizer(c),
			Title:       req.Title,
			Description: req.Description,
			EventDate:   date,
			EventTime:   req.EventTime,
			Venue:       req.Venue,
			City:        req.City,
			PriceStart:  req.PriceStart,
			PriceEnd:    req.PriceEnd,
			Capacity:    req.Capacity,
			CategoryID:  req.CategoryID,
			ArtistID:    req.ArtistID,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, e)
	}
}

// @Summary  List own events
// @Success  200 {array} domain.Event
// @Router   /organizer/events [get]
func handleListOrganizerEvents(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
			return
		}

		limit := parseIntDefault(c.Query("limit"), 50)
		offset := parseIntDefault(c.Query("offset"), 0)

		out, err := svcs.Organizer.ListEvents(c.Request.Context(), userID, limit, offset)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusOK, out)
	}
}

// @Summary  Update own event
// @Param    id  path  string  true  "Event ID (uuid)"
// @Param    req body  UpdateEventRequest true "payload"
// @Success  204
// @Failure  404 {object} ErrorResponse
// @Router   /organizer/events/{id} [put]
func handleUpdateEvent(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		eventID, ok := parseUUIDParam(c, "id")
		if !ok {
			return
		}

		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
			return
		}

		var req UpdateEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		date, err := parseEventDate(req.EventDate)
		if err != nil {
			badRequest(c, "invalid event_date (YYYY-MM-DD)")
			return
		}

		err = svcs.Organizer.UpdateEvent(c.Request.Context(), organizer.UpdateEventInput{
			EventID:     eventID,
			OrganizerID: userID,
			Title:       req.Title,
			Description: req.Description,
			EventDate:   date,
			EventTime:   req.EventTime,
			Venue:       req.Venue,
			City:        req.City,
			PriceStart:  req.PriceStart,
			PriceEnd:    req.PriceEnd,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.Status(http.StatusNoContent)
	}
}

// --- Helpers ---

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badRequest(c, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// accounts service
	case errors.Is(err, accounts.ErrEmailTaken):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "email already registered"})
		return
	case errors.Is(err, accounts.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "password too short"})
		return
	case errors.Is(err, accounts.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid email or password"})
		return
	case errors.Is(err, accounts.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "profile not found"})
		return
	// booking service
	case errors.Is(err, booking.ErrInvalidSeatCount):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid_seat_count"})
		return
	case errors.Is(err, booking.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthenticated"})
		return
	case errors.Is(err, booking.ErrSoldOut):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "sold_out"})
		return
	case errors.Is(err, booking.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	case errors.Is(err, booking.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "booking not found"})
		return
	// catalog service
	case errors.Is(err, catalog.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	// organizer service
	case errors.Is(err, organizer.ErrNotOrganizer):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "organizer profile required"})
		return
	case errors.Is(err, organizer.ErrInvalidEvent):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event"})
		return
	case errors.Is(err, organizer.ErrEventNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "event not found"})
		return
	// artists service
	case errors.Is(err, artists.ErrArtistNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "artist not found"})
		return
	case errors.Is(err, artists.ErrNotProfileOwner):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "artist profile belongs to another user"})
		return
	case errors.Is(err, artists.ErrPortfolioLimit):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "portfolio limit reached"})
		return
	case errors.Is(err, artists.ErrInvalidMediaType):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid media type"})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}
