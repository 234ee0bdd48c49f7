package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/joseph-ayodele/cardscan/constants"
	"github.com/joseph-ayodele/cardscan/internal/common"
	"github.com/joseph-ayodele/cardscan/internal/entity"
	"github.com/joseph-ayodele/cardscan/internal/repository"
)

func setupService(t *testing.T) (*Service, repository.ContactRepository) {
	t.Helper()
	cfg := common.DatabaseConfig{
		Driver:       repository.DriverSQLite,
		DSN:          ":memory:",
		MaxOpenConns: 1,
	}
	db, err := repository.Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := repository.NewContactRepository(db, repository.DriverSQLite, nil)
	return NewService(repo, nil), repo
}

func TestExportCSV_HeaderAndQuoting(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	contact := entity.Contact{
		Name:    "Jane Roe",
		Company: "Acme Corp",
		Phone:   "555-1111, 555-2222",
		Email:   "jane@acme.com",
		Address: "123 Main St, Suite 5",
	}
	require.NoError(t, repo.Insert(ctx, &contact))

	out, err := svc.ExportCSV(ctx)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, constants.CSVHeader, records[0])
	// The joined phone cell survives as one field despite its comma.
	assert.Equal(t, "555-1111, 555-2222", records[1][3])
	assert.Equal(t, "123 Main St, Suite 5", records[1][6])
}

func TestExportCSV_EmptyStore(t *testing.T) {
	svc, _ := setupService(t)

	out, err := svc.ExportCSV(context.Background())
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, constants.CSVHeader, records[0])
}

func TestExportXLSX_RoundTrip(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	contact := entity.Contact{Name: "Jane Roe", Company: "Acme Corp", Email: "jane@acme.com"}
	require.NoError(t, repo.Insert(ctx, &contact))

	out, err := svc.ExportXLSX(ctx)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Contacts")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "name", rows[0][0])
	assert.Equal(t, "created_at", rows[0][7])
	assert.Equal(t, "Jane Roe", rows[1][0])
	assert.Equal(t, "jane@acme.com", rows[1][4])
	assert.NotEmpty(t, rows[1][7])
}

func TestImportTemplate_MatchesImportHeader(t *testing.T) {
	records, err := csv.NewReader(bytes.NewReader(ImportTemplate())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, constants.CSVHeader, records[0])
	for _, row := range records[1:] {
		assert.Len(t, row, len(constants.CSVHeader))
	}
}
