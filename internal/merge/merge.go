package merge

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joseph-ayodele/cardscan/internal/common"
	"github.com/joseph-ayodele/cardscan/internal/entity"
	"github.com/joseph-ayodele/cardscan/internal/repository"
)

// Resolver combines two duplicate contacts into one surviving record.
type Resolver struct {
	contacts repository.ContactRepository
	logger   *slog.Logger
}

func NewResolver(contacts repository.ContactRepository, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{contacts: contacts, logger: logger}
}

// Merge writes the combined record to keepID and deletes removeID. Scalar
// fields keep the longer trimmed value (ties keep the keeper's); list fields
// become the deduplicated token union. If either record is missing the merge
// fails with no mutation; if the update lands but the delete fails the error
// wraps common.ErrPartialMerge and a retry is NOT safe.
func (r *Resolver) Merge(ctx context.Context, keepID, removeID int64) error {
	keep, err := r.contacts.GetByID(ctx, keepID)
	if err != nil {
		return common.WrapError(err, "merge: load surviving contact")
	}
	remove, err := r.contacts.GetByID(ctx, removeID)
	if err != nil {
		return common.WrapError(err, "merge: load contact to remove")
	}

	merged := entity.Contact{
		Name:        longer(keep.Name, remove.Name),
		Designation: longer(keep.Designation, remove.Designation),
		Company:     longer(keep.Company, remove.Company),
		Address:     longer(keep.Address, remove.Address),
		Phone:       unionJoin(keep.Phone, remove.Phone),
		Email:       unionJoin(keep.Email, remove.Email),
		Website:     unionJoin(keep.Website, remove.Website),
	}

	if err := r.contacts.Update(ctx, keepID, merged); err != nil {
		return common.WrapError(err, "merge: update surviving contact")
	}
	if err := r.contacts.Delete(ctx, removeID); err != nil {
		r.logger.Error("merge.partial", "keep_id", keepID, "remove_id", removeID, "error", err)
		return common.NewAppError("MERGE_PARTIAL",
			"surviving contact updated but losing contact not deleted",
			common.ErrPartialMerge)
	}

	r.logger.Info("merge.ok", "keep_id", keepID, "remove_id", removeID)
	return nil
}

// longer prefers the value with greater trimmed length; ties keep a.
func longer(a, b string) string {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	if len(b) > len(a) {
		return b
	}
	return a
}

// unionJoin merges two flattened token lists into a deduplicated union.
// Resulting order is unspecified by contract; first appearance is used.
func unionJoin(a, b string) string {
	seen := map[string]bool{}
	var out []string
	for _, tok := range append(entity.SplitValues(a), entity.SplitValues(b)...) {
		if !seen[tok] {
			seen[tok] = true
			out = append(out, tok)
		}
	}
	return entity.JoinValues(out)
}
