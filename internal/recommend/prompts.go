// Cinematch - Movie Recommendations from Cinematic Profiles
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package recommend

import (
	"fmt"
	"strings"

	"github.com/tomtom215/cinematch/internal/models"
)

const profileSystemPrompt = `You are an expert in cinematography and psychological analysis of cinematic tastes.

Your role is to analyze a user's favorite movies to create a detailed profile of their preferences and cinematic personality.

For each analysis, you must:
1. Identify recurring genres, directors, actors in their choices
2. Analyze preferred decades/eras
3. Understand the themes and motifs that attract them
4. Deduce personality traits based on their cinematic choices
5. Create a narrative description of their cinematic taste
6. Suggest new genres to explore
7. Identify their viewing mood preferences

Use the search tool when your knowledge is not sufficient to complete the profile.

Be precise, insightful and creative in your analysis. Create a rich and nuanced profile that truly captures the essence of the user's cinematic tastes.`

const recommendationSystemPrompt = `You are an expert in personalized movie recommendations. You analyze a user's detailed profile to suggest movies perfectly suited to their tastes.

You use all the information from the user profile:
- Favorite and genres to explore
- Favorite directors and actors
- Preferred decades
- Cinematic personality traits
- Viewing mood preferences
- Cinematic taste description

For each recommendation, you explain precisely why this movie matches the user's profile.
You will provide at least 5 varied but coherent suggestions with the profile.`

const legacySystemPrompt = `You are a movie assistant that suggests films based on user preferences.

For each movie suggestion, you explain why you suggest it. You will provide at least 3 suggestions.
Use the information found via the search tool to enrich your recommendations.`

func profileQuery(favorites []string) string {
	return fmt.Sprintf(`Analyze my favorite movies to create my cinematic profile: %s.

Create a detailed profile that includes:
- Favorite genres
- Favorite directors and actors
- Preferred decades/eras
- Analysis of cinematic preferences
- Personality traits deduced from choices
- Narrative description of cinematic taste
- Recommended genres to explore
- Viewing mood preferences`, strings.Join(favorites, ", "))
}

func listOrNotSpecified(values []string) string {
	if len(values) == 0 {
		return "Not specified"
	}
	return strings.Join(values, ", ")
}

func profileSummary(p *models.Profile) string {
	var b strings.Builder
	b.WriteString("Profile:\n")
	fmt.Fprintf(&b, "- Movies watched: %s\n", listOrNotSpecified(p.MoviesWatched))
	fmt.Fprintf(&b, "- Favorite genres: %s\n", listOrNotSpecified(p.FavoriteGenres))
	fmt.Fprintf(&b, "- Favorite directors: %s\n", listOrNotSpecified(p.FavoriteDirectors))
	fmt.Fprintf(&b, "- Favorite actors: %s\n", listOrNotSpecified(p.FavoriteActors))
	fmt.Fprintf(&b, "- Preferred decades: %s\n", listOrNotSpecified(p.PreferredDecades))
	fmt.Fprintf(&b, "- Movie preferences: %s\n", p.MoviePreferences)
	fmt.Fprintf(&b, "- Personality traits: %s\n", p.PersonalityTraits)
	fmt.Fprintf(&b, "- Taste description: %s\n", p.CinematicTasteDescription)
	fmt.Fprintf(&b, "- Genres to explore: %s\n", listOrNotSpecified(p.RecommendedGenresToExplore))
	fmt.Fprintf(&b, "- Mood preferences: %s\n", listOrNotSpecified(p.ViewingMoodPreferences))
	return b.String()
}

func profileRecommendationQuery(p *models.Profile, query string) string {
	summary := profileSummary(p)
	if query != "" {
		return fmt.Sprintf("%s\n\nSpecific query: %s\n\nBased on this detailed profile, recommend perfectly suited movies.", summary, query)
	}
	return summary + "\n\nBased on this detailed cinematic profile, recommend movies that perfectly match this user's tastes and personality."
}

func legacyQuery(favorites []string, query string) string {
	if query == "" {
		query = "Can you suggest similar movies?"
	}
	return fmt.Sprintf("Here are the movies I like: %s. %s", strings.Join(favorites, ", "), query)
}
