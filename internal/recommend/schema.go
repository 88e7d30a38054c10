// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import "github.com/tomtom215/cinematch/internal/gemini"

func stringSchema(desc string) *gemini.Schema {
	return &gemini.Schema{Type: gemini.TypeString, Description: desc}
}

func stringListSchema(desc string) *gemini.Schema {
	return &gemini.Schema{Type: gemini.TypeArray, Description: desc, Items: &gemini.Schema{Type: gemini.TypeString}}
}

// profileSchema mirrors models.Profile.
var profileSchema = &gemini.Schema{
	Type: gemini.TypeObject,
	Properties: map[string]*gemini.Schema{
		"favorite_genres":               stringListSchema("Genres the user returns to most often"),
		"favorite_directors":            stringListSchema("Directors recurring in the user's choices"),
		"favorite_actors":               stringListSchema("Actors recurring in the user's choices"),
		"preferred_decades":             stringListSchema("Preferred decades or eras, e.g. 1970s"),
		"movies_watched":                stringListSchema("The movies the profile was built from"),
		"movie_preferences":             stringSchema("Analysis of the user's cinematic preferences"),
		"personality_traits":            stringSchema("Personality traits deduced from the choices"),
		"cinematic_taste_description":   stringSchema("Narrative description of the user's cinematic taste"),
		"recommended_genres_to_explore": stringListSchema("New genres the user could explore"),
		"viewing_mood_preferences":      stringListSchema("Moods the user likes to watch movies in"),
	},
	Required: []string{
		"favorite_genres",
		"favorite_directors",
		"favorite_actors",
		"preferred_decades",
		"movies_watched",
		"movie_preferences",
		"personality_traits",
		"cinematic_taste_description",
		"recommended_genres_to_explore",
		"viewing_mood_preferences",
	},
}

// agentMoviesSchema mirrors models.AgentMovies.
var agentMoviesSchema = &gemini.Schema{
	Type: gemini.TypeObject,
	Properties: map[string]*gemini.Schema{
		"movies": {
			Type: gemini.TypeArray,
			Items: &gemini.Schema{
				Type: gemini.TypeObject,
				Properties: map[string]*gemini.Schema{
					"title":           stringSchema("Movie title"),
					"year":            stringSchema("Release year"),
					"genre":           stringSchema("Main genre"),
					"director":        stringSchema("Director"),
					"description":     stringSchema("Short synopsis"),
					"why_recommended": stringSchema("Why this movie matches the user"),
					"rating":          stringSchema("Typical critic or audience rating"),
					"cast":            stringListSchema("Main cast"),
				},
				Required: []string{"title", "why_recommended"},
			},
		},
	},
	Required: []string{"movies"},
}
