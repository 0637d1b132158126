package scrape

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filledcard/ingest-cli/internal/model"
)

const ndcaTableHTML = `<html><body>
<table>
  <tbody>
    <tr><td>Ann Lee</td><td>NDCA-20001</td><td>x</td><td>Star Studio</td><td>NY</td></tr>
    <tr><td>Bob Ray</td><td>NDCA-20002</td><td>x</td><td>West Dance</td><td>CA</td></tr>
    <tr><td></td><td>NDCA-20003</td><td>x</td><td>Empty Name</td><td>TX</td></tr>
    <tr><td>short</td></tr>
  </tbody>
</table>
</body></html>`

const ndcaMemberRowHTML = `<html><body>
<div class="member-row"><div>Cara Diaz</div><div>NDCA-30001</div></div>
<div class="member-row"><div>Dan Cho</div><div>NDCA-30002</div></div>
</body></html>`

func TestNDCAStatic_Table(t *testing.T) {
	rows, outcome := NewNDCAStatic([]byte(ndcaTableHTML)).Extract(context.Background())
	assert.Equal(t, Success, outcome)
	require.Len(t, rows, 2)

	assert.Equal(t, "Ann Lee", rows[0].Name)
	assert.Equal(t, "NDCA-20001", rows[0].NDCAID)
	assert.Equal(t, "Star Studio", rows[0].Studio)
	assert.Equal(t, "NY", rows[0].State)
	assert.Equal(t, model.SourceNDCA, rows[0].Source)
}

func TestNDCAStatic_MemberRowFallbackSelector(t *testing.T) {
	rows, outcome := NewNDCAStatic([]byte(ndcaMemberRowHTML)).Extract(context.Background())
	assert.Equal(t, Success, outcome)
	require.Len(t, rows, 2)
	assert.Equal(t, "Cara Diaz", rows[0].Name)
	assert.Equal(t, "NDCA-30001", rows[0].NDCAID)
	assert.Empty(t, rows[0].State)
}

func TestNDCAStatic_NoStructureIsInconclusive(t *testing.T) {
	rows, outcome := NewNDCAStatic([]byte(`<html><body><p>Loading members…</p></body></html>`)).Extract(context.Background())
	assert.Nil(t, rows)
	assert.Equal(t, Inconclusive, outcome)
}

func TestNDCAStatic_NilDocIsUnavailable(t *testing.T) {
	rows, outcome := NewNDCAStatic(nil).Extract(context.Background())
	assert.Nil(t, rows)
	assert.Equal(t, Unavailable, outcome)
}

func TestNDCASample(t *testing.T) {
	rows, outcome := NDCASample{}.Extract(context.Background())
	assert.Equal(t, Success, outcome)
	require.Len(t, rows, 5)
	for _, d := range rows {
		assert.NotEmpty(t, d.FirstName)
		assert.NotEmpty(t, d.LastName)
		assert.NotEmpty(t, d.NDCAID)
	}
}

// fixedStrategy is a test double with a canned outcome.
type fixedStrategy struct {
	name    string
	rows    []model.RawDancer
	outcome Outcome
}

func (f fixedStrategy) Name() string { return f.name }
func (f fixedStrategy) Extract(context.Context) ([]model.RawDancer, Outcome) {
	return f.rows, f.outcome
}

func TestRun_FirstSuccessWins(t *testing.T) {
	got := Run[model.RawDancer](context.Background(),
		fixedStrategy{name: "a", outcome: Inconclusive},
		fixedStrategy{name: "b", rows: []model.RawDancer{{FirstName: "Ann"}}, outcome: Success},
		fixedStrategy{name: "c", rows: []model.RawDancer{{FirstName: "Zed"}}, outcome: Success},
	)
	require.Len(t, got, 1)
	assert.Equal(t, "Ann", got[0].FirstName)
}

func TestRun_AllFailReturnsNil(t *testing.T) {
	got := Run[model.RawDancer](context.Background(),
		fixedStrategy{name: "a", outcome: Unavailable},
		fixedStrategy{name: "b", outcome: Inconclusive},
	)
	assert.Nil(t, got)
}
