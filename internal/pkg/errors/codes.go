package errors

import "net/http"

var (
	ErrPOINotFound = New(
		"POI_NOT_FOUND",
		"POI not found",
		http.StatusNotFound,
	)

	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidImportMode = New(
		"INVALID_IMPORT_MODE",
		"Import mode must be replace or merge",
		http.StatusBadRequest,
	)

	ErrInvalidFavoritesFile = New(
		"INVALID_FAVORITES_FILE",
		"Favorites file must be a JSON array of ids",
		http.StatusBadRequest,
	)

	ErrInvalidFavoritesURL = New(
		"INVALID_FAVORITES_URL",
		"Favorites URL could not be parsed",
		http.StatusBadRequest,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
