package applicationapimodels

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplicationDataValidate(t *testing.T) {
	valid := ApplicationData{
		RecruitmentID: "rec-1",
		Name:          "Jane Doe",
		Email:         "jane@example.com",
	}

	t.Run(`valid data passes`, func(t *testing.T) {
		require.Nil(t, valid.Validate())
	})

	t.Run(`recruitment and name are required`, func(t *testing.T) {
		data := valid
		data.RecruitmentID = ""
		require.NotNil(t, data.Validate())

		data = valid
		data.Name = ""
		require.NotNil(t, data.Validate())
	})

	t.Run(`email must look like an email`, func(t *testing.T) {
		data := valid
		data.Email = "not-an-email"
		require.NotNil(t, data.Validate())
	})
}

func TestApplicationDataToModel(t *testing.T) {
	t.Run(`email is normalized to lower case`, func(t *testing.T) {
		data := ApplicationData{Email: " Jane@Example.COM "}
		rec := data.ToModel()
		require.Equal(t, "jane@example.com", rec.Email)
	})
}

func TestRatingAddValidate(t *testing.T) {
	t.Run(`rating stays within 1 to 5`, func(t *testing.T) {
		require.NotNil(t, RatingAdd{Skill: "go", Rating: 0}.Validate())
		require.NotNil(t, RatingAdd{Skill: "go", Rating: 6}.Validate())
		require.Nil(t, RatingAdd{Skill: "go", Rating: 3}.Validate())
	})

	t.Run(`skill is required`, func(t *testing.T) {
		require.NotNil(t, RatingAdd{Rating: 3}.Validate())
	})
}
