package artists

import "errors"

var (
	ErrArtistNotFound   = errors.New("artist not found")
	ErrNotProfileOwner  = errors.New("artist profile belongs to another user")
	ErrPortfolioLimit   = errors.New("portfolio limit reached for media type")
	ErrInvalidMediaType = errors.New("invalid media type")
)
