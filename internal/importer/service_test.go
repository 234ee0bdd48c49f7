package importer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

const csvHeader = "name,designation,company,phone,email,website,address\n"

func TestImportCSV_SkipsBlankIdentityRows(t *testing.T) {
	svc, repo := setupService(t)

	data := csvHeader +
		"Jane Roe,Engineer,Acme Corp,555-1111,jane@acme.com,,\n" +
		",,,555-9999,orphan@x.com,,\n" +
		"John Smith,,Beta LLC,,,,\n"

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(data), true)
	require.NoError(t, err)

	// The identity-less row is neither a success nor an error.
	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 0, result.ErrorCount)
	assert.Equal(t, 3, result.TotalCount)
	assert.Equal(t, "Successfully imported 2 contacts", result.Message)

	contacts, err := repo.ListContacts(context.Background())
	require.NoError(t, err)
	assert.Len(t, contacts, 2)
}

func TestImportCSV_MissingColumnsIsReportedNotFatal(t *testing.T) {
	svc, _ := setupService(t)

	data := "name,company\nJane Roe,Acme Corp\n"
	result, err := svc.ImportCSV(context.Background(), strings.NewReader(data), true)
	require.NoError(t, err)

	assert.Equal(t, "CSV file missing required columns", result.Message)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "designation")
	assert.Equal(t, 0, result.SuccessCount)
}

func TestImportCSV_EmptyFile(t *testing.T) {
	svc, _ := setupService(t)

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(""), true)
	require.NoError(t, err)
	assert.Equal(t, "CSV file is empty", result.Message)
}

func TestImportCSV_SkipsDuplicatesAgainstStore(t *testing.T) {
	svc, repo := setupService(t)
	ctx := context.Background()

	existing := entity.Contact{Name: "Jane Roe", Company: "Acme Corp", Email: "jane@acme.com"}
	require.NoError(t, repo.Insert(ctx, &existing))

	data := csvHeader +
		"jane roe,Engineer,ACME CORP,,,,\n" + // same (name, company), case-folded
		"Different Person,,Other Co,,JANE@ACME.COM,,\n" + // same email
		"New Person,,New Co,,new@x.com,,\n"

	result, err := svc.ImportCSV(ctx, strings.NewReader(data), true)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 0, result.ErrorCount)
	assert.Equal(t, 3, result.TotalCount)

	contacts, _ := repo.ListContacts(ctx)
	assert.Len(t, contacts, 2)
}

func TestImportCSV_DuplicateWithinSameRun(t *testing.T) {
	svc, repo := setupService(t)

	data := csvHeader +
		"Jane Roe,,Acme Corp,,,,\n" +
		"Jane Roe,,Acme Corp,,,,\n"

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(data), true)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	contacts, _ := repo.ListContacts(context.Background())
	assert.Len(t, contacts, 1)
}

func TestImportCSV_SkipDuplicatesDisabled(t *testing.T) {
	svc, repo := setupService(t)

	data := csvHeader +
		"Jane Roe,,Acme Corp,,,,\n" +
		"Jane Roe,,Acme Corp,,,,\n"

	result, err := svc.ImportCSV(context.Background(), strings.NewReader(data), false)
	require.NoError(t, err)

	assert.Equal(t, 2, result.SuccessCount)
	contacts, _ := repo.ListContacts(context.Background())
	assert.Len(t, contacts, 2)
}

func TestImportJSON_ValidPayload(t *testing.T) {
	svc, repo := setupService(t)

	payload := `[
		{"name": "Jane Roe", "company": "Acme Corp",
		 "phone": ["555-1111", "555-2222"], "email": ["jane@acme.com"]},
		{"name": "John Smith", "company": "Beta LLC"}
	]`

	result, err := svc.ImportJSON(context.Background(), strings.NewReader(payload), true)
	require.NoError(t, err)

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 0, result.ErrorCount)

	contacts, _ := repo.ListContacts(context.Background())
	require.Len(t, contacts, 2)
	byName := map[string]entity.Contact{}
	for _, c := range contacts {
		byName[c.Name] = c
	}
	assert.Equal(t, "555-1111, 555-2222", byName["Jane Roe"].Phone)
}

func TestImportJSON_SkipsWhitespaceIdentityRows(t *testing.T) {
	svc, repo := setupService(t)

	payload := `[
		{"name": "  ", "company": "\t", "email": ["orphan@x.com"]},
		{"name": "Jane Roe", "company": "Acme Corp"}
	]`

	result, err := svc.ImportJSON(context.Background(), strings.NewReader(payload), true)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 0, result.ErrorCount)
	assert.Equal(t, 2, result.TotalCount)

	contacts, _ := repo.ListContacts(context.Background())
	require.Len(t, contacts, 1)
	assert.Equal(t, "Jane Roe", contacts[0].Name)
}

func TestImportJSON_SchemaRejection(t *testing.T) {
	svc, repo := setupService(t)

	for name, payload := range map[string]string{
		"phone as string":  `[{"name": "Jane", "phone": "555-1111"}]`,
		"unknown field":    `[{"name": "Jane", "nickname": "JJ"}]`,
		"object not array": `{"name": "Jane"}`,
	} {
		t.Run(name, func(t *testing.T) {
			result, err := svc.ImportJSON(context.Background(), strings.NewReader(payload), true)
			require.NoError(t, err)
			assert.Equal(t, "JSON payload failed schema validation", result.Message)
			assert.Equal(t, 0, result.SuccessCount)
		})
	}

	contacts, _ := repo.ListContacts(context.Background())
	assert.Empty(t, contacts)
}

func TestImportJSON_MalformedPayload(t *testing.T) {
	svc, _ := setupService(t)

	result, err := svc.ImportJSON(context.Background(), strings.NewReader("{not json"), true)
	require.NoError(t, err)
	assert.Equal(t, "invalid JSON payload", result.Message)
}
