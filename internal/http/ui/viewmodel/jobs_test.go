package viewmodel

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leantech/jobboard/internal/domain/model"
)

func TestNewJobList(t *testing.T) {
	t.Parallel()

	c := &model.JobCollection{
		Jobs: []model.JobPosting{
			{ID: "b2", Title: "Backend Engineer", Sector: "Engineering", WorkMode: "Remote", Country: "Brazil"},
			{ID: "a 1", Title: "Designer"},
		},
		LastUpdated: "2024-01-02 03:04:05",
	}

	list := NewJobList(c)
	require.Len(t, list.Cards, 2)
	assert.False(t, list.Empty())
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, "2024-01-02 03:04:05", list.LastUpdated)
	assert.Equal(t, "Backend Engineer", list.Cards[0].Title)
	assert.Equal(t, "Engineering | Remote | Brazil", list.Cards[0].Classification)
	assert.Equal(t, "/detail?id=b2", list.Cards[0].DetailURL)
	assert.Equal(t, "/detail?id=a+1", list.Cards[1].DetailURL)
	assert.Empty(t, list.Cards[1].Classification)
}

func TestNewJobList_Empty(t *testing.T) {
	t.Parallel()

	list := NewJobList(&model.JobCollection{LastUpdated: "x"})
	assert.True(t, list.Empty())
	assert.Equal(t, 0, list.Total)

	assert.True(t, NewJobList(nil).Empty())
}

func TestNewJobDetail(t *testing.T) {
	t.Parallel()

	job := model.JobPosting{
		ID:          "oX1",
		Title:       "Go Developer",
		Description: "<p>Build things</p>",
		Sector:      "Engineering",
		Country:     "Chile",
	}
	d := NewJobDetail(job, "5511999999999")

	assert.Equal(t, "oX1", d.ID)
	assert.Equal(t, "Engineering | Chile", d.Classification)
	assert.Equal(t, "<p>Build things</p>", string(d.Description))
	assert.Equal(t, "/", d.BackURL)
	assert.Equal(t, "Back to Jobs", d.BackText)

	u, err := url.Parse(d.ApplyURL)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/5511999999999", u.Path)
	assert.Equal(t, model.ApplyMessage(job), u.Query().Get("text"))
}
