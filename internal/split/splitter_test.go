package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/reparper/reparper/internal/extract"
)

func classData() *extract.ClassData {
	roster := extract.NewRoster()
	roster.Add("1", extract.RosterEntry{"Name": "Aria Smith", "Gender": "Female"})
	roster.Add("2", extract.RosterEntry{"Name": "Ben Jones", "Gender": "Male"})
	roster.Add("3", extract.RosterEntry{"Name": "Cara Lee", "Gender": "Female"})
	roster.Add("4", extract.RosterEntry{"Name": "Dev Patel", "Gender": "male"})

	return &extract.ClassData{
		Roster: roster,
		Scores: extract.Scores{
			"1": {Name: "Aria Smith"},
			"2": {Name: "Ben Jones"},
			"9": {Name: "Never Rostered"},
		},
		Skills: extract.Skills{
			"3": {Name: "Cara Lee"},
		},
		Comments: extract.Comments{
			"1": {Name: "Aria Smith", S1: "good"},
			"4": {Name: "Dev Patel", S1: "dropped with student"},
		},
		LevelComments: extract.LevelComments{
			"3": {"Reading": {"S1": "Shared table"}},
		},
	}
}

func TestSplitPartitionsRosterInOrder(t *testing.T) {
	s := NewSplitter(Options{}, zap.NewNop())

	res, err := s.Split(classData())
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "3"}, res.Female.Roster.IDs())
	assert.Equal(t, []string{"2"}, res.Male.Roster.IDs())
	assert.Equal(t, []string{"4"}, res.Dropped)
}

func TestSplitRoutesPerStudentMaps(t *testing.T) {
	s := NewSplitter(Options{}, zap.NewNop())

	res, err := s.Split(classData())
	require.NoError(t, err)

	assert.Contains(t, res.Female.Scores, "1")
	assert.Contains(t, res.Male.Scores, "2")
	assert.NotContains(t, res.Female.Scores, "9")
	assert.NotContains(t, res.Male.Scores, "9")

	assert.Contains(t, res.Female.Skills, "3")
	assert.Empty(t, res.Male.Skills)

	assert.Contains(t, res.Female.Comments, "1")
	assert.NotContains(t, res.Female.Comments, "4")
	assert.NotContains(t, res.Male.Comments, "4")
}

func TestSplitSharesLevelComments(t *testing.T) {
	s := NewSplitter(Options{}, zap.NewNop())
	data := classData()

	res, err := s.Split(data)
	require.NoError(t, err)

	assert.Equal(t, "Shared table", res.Female.LevelComments.Lookup("3", "Reading", "S1"))
	assert.Equal(t, "Shared table", res.Male.LevelComments.Lookup("3", "Reading", "S1"))
}

func TestSplitStrictGenderFails(t *testing.T) {
	s := NewSplitter(Options{StrictGender: true}, zap.NewNop())

	res, err := s.Split(classData())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "student 4")
}

func TestSplitGenderIsCaseSensitive(t *testing.T) {
	roster := extract.NewRoster()
	roster.Add("1", extract.RosterEntry{"Name": "Lower", "Gender": "female"})

	s := NewSplitter(Options{}, zap.NewNop())
	res, err := s.Split(&extract.ClassData{
		Roster:   roster,
		Scores:   make(extract.Scores),
		Skills:   make(extract.Skills),
		Comments: make(extract.Comments),
	})
	require.NoError(t, err)

	assert.Zero(t, res.Female.Roster.Len())
	assert.Zero(t, res.Male.Roster.Len())
	assert.Equal(t, []string{"1"}, res.Dropped)
}
