package enrichment

import (
	"strconv"

	"fjacquet/sales-analytics/internal/models"

	"github.com/google/uuid"
)

// discountThreshold gives roughly one discounted transaction in four.
const discountThreshold = 64

// Metadata is the deterministic part of a record's enrichment.
type Metadata struct {
	Region   models.Region
	Category models.Category
	Discount bool
}

// Assigner derives metadata from a transaction id alone. The same seed and
// id always produce the same Metadata, across runs and platforms.
type Assigner struct {
	namespace uuid.UUID
}

// NewAssigner creates an assigner for the given seed.
func NewAssigner(seed int64) *Assigner {
	return &Assigner{
		namespace: uuid.NewSHA1(uuid.NameSpaceOID, []byte("sales-enrichment/"+strconv.FormatInt(seed, 10))),
	}
}

// Assign hashes transactionID into the seed namespace and reads region,
// category and discount from the first bytes of the digest.
func (a *Assigner) Assign(transactionID string) Metadata {
	digest := uuid.NewSHA1(a.namespace, []byte(transactionID))
	return Metadata{
		Region:   models.Regions[int(digest[0])%len(models.Regions)],
		Category: models.Categories[int(digest[1])%len(models.Categories)],
		Discount: digest[2] < discountThreshold,
	}
}
