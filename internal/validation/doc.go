// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by the HTTP handlers, which validate
// request bodies and query parameters, and by the recommendation service,
// which validates the structured output returned by the LLM before using it.
//
// # Quick Start
//
//	type createProfileRequest struct {
//	    Favorites []string `json:"favorites" validate:"min=1,dive,notblank"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusUnprocessableEntity, apiErr.Code, apiErr.Message, nil)
//	    return
//	}
//
// # Field Names
//
// Errors name fields by their json tag, so a client sending
// {"favorites": []} reads "favorites must contain at least 1 item" rather
// than a Go field name. Nested fields keep their index, e.g. "movies[2].title".
//
// # Custom Tags
//
//   - notblank: string must contain a non-whitespace character
//
// # Error Format
//
//	{
//	    "code": "VALIDATION_ERROR",
//	    "message": "favorites must contain at least 1 item",
//	    "details": {"field": "favorites", "tag": "min", "value": []}
//	}
package validation
