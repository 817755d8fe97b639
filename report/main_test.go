package report

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/zalepa/plantio/config"
	"github.com/zalepa/plantio/plantio"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fixture(t *testing.T) []plantio.Record {
	t.Helper()
	tbl, err := plantio.Load("../plantio/testdata/plantio.csv", plantio.LoadOptions{})
	require.NoError(t, err)
	return plantio.Classify(plantio.Derive(tbl.Records))
}

func fixtureViews(t *testing.T) []View {
	t.Helper()
	views, err := Build(fixture(t), Options{Projects: config.Default().Projects}, nil)
	require.NoError(t, err)
	return views
}
