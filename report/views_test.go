package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/zalepa/plantio/chart"
	"github.com/zalepa/plantio/config"
)

func slugs(views []View) []string {
	out := make([]string, len(views))
	for i, v := range views {
		out[i] = v.Slug
	}
	return out
}

func TestBuild(t *testing.T) {
	views := fixtureViews(t)
	assert.Equal(t, []string{
		"home",
		"assetco",
		"devco",
		"assetco-rio-do-vento-expansao",
		"assetco-rio-do-vento",
		"assetco-umari",
		"devco-torre-anemometrica",
	}, slugs(views))

	home := views[0]
	require.Len(t, home.Figures, 8)
	assert.Equal(t, "Percentual de Aproveitamento das Áreas de Plantio por PRF", home.Figures[0].Title)
	assert.Equal(t, "Uso do Solo", home.Figures[7].Title)

	for _, v := range views[1:] {
		assert.Len(t, v.Figures, 2, v.Slug)
	}
	assert.Equal(t, "DEVco - Resumo das Áreas de Plantio por PRF", views[2].Figures[1].Title)
	assert.Equal(t, "Resumo das Áreas de Plantio - UMARI", views[5].Figures[1].Title)
	assert.Equal(t, "UMARI - ASSETco", views[5].Title)
}

func TestBuildSkipsEmptyProjects(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	projects := []config.Project{
		{Division: "DEVco", Name: "UMARI"},
		{Division: "ASSETco", Name: "UMARI", Title: "Umari"},
	}
	views, err := Build(fixture(t), Options{Projects: projects}, zap.New(core))
	require.NoError(t, err)

	assert.Equal(t, []string{"home", "assetco", "devco", "assetco-umari"}, slugs(views))
	assert.Equal(t, "Percentual de Aproveitamento das Áreas de Plantio - Umari", views[3].Figures[0].Title)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "DEVco", logs.All()[0].ContextMap()["division"])
}

func TestBuildEmpty(t *testing.T) {
	_, err := Build(nil, Options{}, nil)
	assert.ErrorIs(t, err, chart.ErrNoData)
}

func TestSelect(t *testing.T) {
	views := fixtureViews(t)

	all, err := Select(views, nil)
	require.NoError(t, err)
	assert.Len(t, all, len(views))

	picked, err := Select(views, []string{"DEVco", "Home"})
	require.NoError(t, err)
	assert.Equal(t, []string{"devco", "home"}, slugs(picked))

	_, err = Select(views, []string{"nowhere"})
	assert.ErrorIs(t, err, ErrUnknownView)

	_, err = Find(views, "assetco-umari")
	assert.NoError(t, err)
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Rio do Vento Expansão":    "rio-do-vento-expansao",
		"DEVco Torre Anemométrica": "devco-torre-anemometrica",
		"  UMARI / Bloco  Norte ":  "umari-bloco-norte",
		"Divisões":                 "divisoes",
		"":                         "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slug(in), in)
	}
}
