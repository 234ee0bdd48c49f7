package merge

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/cardscan/internal/common"
	"github.com/joseph-ayodele/cardscan/internal/entity"
	"github.com/joseph-ayodele/cardscan/internal/repository"
)

// fakeRepo is an in-memory ContactRepository with an injectable delete
// failure, so the partial-merge path can be exercised.
type fakeRepo struct {
	contacts   map[int64]entity.Contact
	nextID     int64
	failDelete bool
}

var _ repository.ContactRepository = (*fakeRepo)(nil)

func newFakeRepo(contacts ...entity.Contact) *fakeRepo {
	r := &fakeRepo{contacts: map[int64]entity.Contact{}, nextID: 1}
	for _, c := range contacts {
		c.ID = r.nextID
		r.contacts[c.ID] = c
		r.nextID++
	}
	return r
}

func (r *fakeRepo) Insert(_ context.Context, c *entity.Contact) error {
	c.ID = r.nextID
	r.contacts[c.ID] = *c
	r.nextID++
	return nil
}

func (r *fakeRepo) ListContacts(_ context.Context) ([]entity.Contact, error) {
	out := make([]entity.Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*entity.Contact, error) {
	c, ok := r.contacts[id]
	if !ok {
		return nil, common.NewAppError("CONTACT_NOT_FOUND", fmt.Sprintf("contact %d", id), common.ErrNotFound)
	}
	return &c, nil
}

func (r *fakeRepo) Update(_ context.Context, id int64, c entity.Contact) error {
	old, ok := r.contacts[id]
	if !ok {
		return common.NewAppError("CONTACT_NOT_FOUND", fmt.Sprintf("contact %d", id), common.ErrNotFound)
	}
	c.ID = old.ID
	c.CreatedAt = old.CreatedAt
	r.contacts[id] = c
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if r.failDelete {
		return common.NewAppError("DB", "delete failed", common.ErrDatabase)
	}
	if _, ok := r.contacts[id]; !ok {
		return common.NewAppError("CONTACT_NOT_FOUND", fmt.Sprintf("contact %d", id), common.ErrNotFound)
	}
	delete(r.contacts, id)
	return nil
}

func TestMerge_UnionsTokensAndDeletesLoser(t *testing.T) {
	repo := newFakeRepo(
		entity.Contact{Name: "Jane Roe", Phone: "555-1111"},
		entity.Contact{Name: "Jane Roe", Phone: "555-1111, 555-2222"},
	)

	require.NoError(t, NewResolver(repo, nil).Merge(context.Background(), 1, 2))

	kept, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"555-1111", "555-2222"}, entity.SplitValues(kept.Phone))

	_, err = repo.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMerge_LongerTrimmedValueWins(t *testing.T) {
	repo := newFakeRepo(
		entity.Contact{Name: "J. Roe", Company: "Acme Corporation   ", Designation: "Engineer"},
		entity.Contact{Name: "Jane Roe", Company: "Acme", Designation: "Engineer"},
	)

	require.NoError(t, NewResolver(repo, nil).Merge(context.Background(), 1, 2))

	kept, _ := repo.GetByID(context.Background(), 1)
	assert.Equal(t, "Jane Roe", kept.Name)
	assert.Equal(t, "Acme Corporation", kept.Company)
	// Equal lengths keep the surviving record's value.
	assert.Equal(t, "Engineer", kept.Designation)
}

func TestMerge_MissingRecordNoMutation(t *testing.T) {
	repo := newFakeRepo(entity.Contact{Name: "Jane Roe", Phone: "555-1111"})

	err := NewResolver(repo, nil).Merge(context.Background(), 1, 99)
	assert.ErrorIs(t, err, common.ErrNotFound)

	kept, _ := repo.GetByID(context.Background(), 1)
	assert.Equal(t, "555-1111", kept.Phone)
}

func TestMerge_DeleteFailureIsPartial(t *testing.T) {
	repo := newFakeRepo(
		entity.Contact{Name: "Jane Roe", Phone: "555-1111"},
		entity.Contact{Name: "Jane Roe", Phone: "555-2222"},
	)
	repo.failDelete = true

	err := NewResolver(repo, nil).Merge(context.Background(), 1, 2)
	assert.ErrorIs(t, err, common.ErrPartialMerge)

	// The surviving record was already rewritten; the loser remains.
	kept, _ := repo.GetByID(context.Background(), 1)
	assert.ElementsMatch(t, []string{"555-1111", "555-2222"}, entity.SplitValues(kept.Phone))
	_, err = repo.GetByID(context.Background(), 2)
	assert.NoError(t, err)
}

func TestMerge_IdempotentOnSetFields(t *testing.T) {
	repo := newFakeRepo(
		entity.Contact{Name: "Jane Roe", Phone: "555-1111", Email: "jane@acme.com"},
		entity.Contact{Name: "Jane Roe", Phone: "555-1111, 555-2222"},
		entity.Contact{Name: "Jane Roe"},
	)
	resolver := NewResolver(repo, nil)

	require.NoError(t, resolver.Merge(context.Background(), 1, 2))
	// Merging with an all-empty third record must not lose any token.
	require.NoError(t, resolver.Merge(context.Background(), 1, 3))

	kept, _ := repo.GetByID(context.Background(), 1)
	assert.ElementsMatch(t, []string{"555-1111", "555-2222"}, entity.SplitValues(kept.Phone))
	assert.Equal(t, "jane@acme.com", kept.Email)
}
