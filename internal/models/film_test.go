package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilmEntry_State(t *testing.T) {
	tests := []struct {
		name  string
		entry FilmEntry
		want  WatchState
	}{
		{name: "no rating", entry: FilmEntry{}, want: StateUnrated},
		{name: "rated", entry: FilmEntry{Rating: Rating(7)}, want: StateRated},
		{name: "rated zero", entry: FilmEntry{Rating: Rating(0)}, want: StateRated},
		{name: "to watch wins", entry: FilmEntry{Rating: Rating(7), ToWatch: true}, want: StateToWatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.entry.State())
		})
	}
}

func TestFilmInput_NormalizeClearsRatingForToWatch(t *testing.T) {
	in := FilmInput{ExternalID: "tt1", Rating: Rating(8), Comment: "great", ToWatch: true}.Normalize()

	assert.Nil(t, in.Rating)
	assert.Empty(t, in.Comment)
	assert.True(t, in.ToWatch)
}

func TestFilmInput_NormalizeKeepsWatched(t *testing.T) {
	in := FilmInput{ExternalID: "tt1", Rating: Rating(8), Comment: "great"}.Normalize()

	require.NotNil(t, in.Rating)
	assert.Equal(t, 8, *in.Rating)
	assert.Equal(t, "great", in.Comment)
}

func TestFilmInput_Validate(t *testing.T) {
	assert.ErrorIs(t, FilmInput{}.Validate(), ErrMissingExternalID)
	assert.ErrorIs(t, FilmInput{ExternalID: "tt1", Rating: Rating(11)}.Validate(), ErrInvalidRating)
	assert.ErrorIs(t, FilmInput{ExternalID: "tt1", Rating: Rating(-1)}.Validate(), ErrInvalidRating)
	assert.NoError(t, FilmInput{ExternalID: "tt1", Rating: Rating(0)}.Validate())
	assert.NoError(t, FilmInput{ExternalID: "tt1"}.Validate())
}

func TestFilmEntry_InputRoundTrip(t *testing.T) {
	c := "note"
	e := FilmEntry{ExternalID: "tt1", Title: "X", Rating: Rating(5), Comment: &c, Poster: "p", Year: "1999"}

	in := e.Input()
	assert.Equal(t, FilmInput{ExternalID: "tt1", Title: "X", Rating: Rating(5), Comment: "note", Poster: "p", Year: "1999"}, in)
}
