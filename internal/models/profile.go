// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package models

// Profile is the structured cinematic profile of a user.
type Profile struct {
	FavoriteGenres             []string `json:"favorite_genres"`
	FavoriteDirectors          []string `json:"favorite_directors"`
	FavoriteActors             []string `json:"favorite_actors"`
	PreferredDecades           []string `json:"preferred_decades"`
	MoviesWatched              []string `json:"movies_watched"`
	MoviePreferences           string   `json:"movie_preferences"`
	PersonalityTraits          string   `json:"personality_traits"`
	CinematicTasteDescription  string   `json:"cinematic_taste_description"`
	RecommendedGenresToExplore []string `json:"recommended_genres_to_explore"`
	ViewingMoodPreferences     []string `json:"viewing_mood_preferences"`
}

// Normalize replaces nil lists with empty ones so they encode as [].
func (p *Profile) Normalize() {
	for _, list := range []*[]string{
		&p.FavoriteGenres,
		&p.FavoriteDirectors,
		&p.FavoriteActors,
		&p.PreferredDecades,
		&p.MoviesWatched,
		&p.RecommendedGenresToExplore,
		&p.ViewingMoodPreferences,
	} {
		if *list == nil {
			*list = []string{}
		}
	}
}

// Clone returns a deep copy of p.
func (p Profile) Clone() Profile {
	out := p
	out.FavoriteGenres = cloneStrings(p.FavoriteGenres)
	out.FavoriteDirectors = cloneStrings(p.FavoriteDirectors)
	out.FavoriteActors = cloneStrings(p.FavoriteActors)
	out.PreferredDecades = cloneStrings(p.PreferredDecades)
	out.MoviesWatched = cloneStrings(p.MoviesWatched)
	out.RecommendedGenresToExplore = cloneStrings(p.RecommendedGenresToExplore)
	out.ViewingMoodPreferences = cloneStrings(p.ViewingMoodPreferences)
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}

// StoredProfile pairs a profile with the ID it is stored under.
type StoredProfile struct {
	ProfileID string  `json:"profile_id"`
	Profile   Profile `json:"profile"`
}
