package preset

import (
	"fmt"

	"github.com/xaionaro-go/camerafilter/filter"
)

// Entry is a catalog item: a filter identifier with the chain it applies.
type Entry struct {
	ID          ID
	DisplayName string
	Chain       *filter.Chain
}

func (e Entry) String() string {
	return fmt.Sprintf("%s: %s", e.ID, e.Chain)
}

// Catalog is a fixed set of entries; it is immutable after construction
// and is safe for concurrent use.
type Catalog struct {
	entries []Entry
}

func NewCatalog(entries ...Entry) (*Catalog, error) {
	byID := map[ID]struct{}{}
	for _, e := range entries {
		if !e.ID.IsValid() {
			return nil, ErrUnknownID{Value: e.ID.String()}
		}
		if _, ok := byID[e.ID]; ok {
			return nil, fmt.Errorf("filter '%s' is defined twice", e.ID)
		}
		if e.Chain == nil {
			return nil, fmt.Errorf("filter '%s' has no chain", e.ID)
		}
		byID[e.ID] = struct{}{}
	}
	return &Catalog{
		entries: append([]Entry(nil), entries...),
	}, nil
}

// Default returns the built-in catalog: original, vintage, noir and bloom.
func Default() *Catalog {
	c, err := NewCatalog(
		Entry{
			ID:          IDOriginal,
			DisplayName: "Original",
			Chain:       filter.Identity(IDOriginal.String()),
		},
		Entry{
			ID:          IDVintage,
			DisplayName: "Vintage",
			Chain: filter.MustNewChain(IDVintage.String(),
				filter.TransferEffect(),
				filter.NoiseBlend(),
				filter.Sepia(),
				filter.Vignette(1.5, 3.0),
			),
		},
		Entry{
			ID:          IDNoir,
			DisplayName: "Noir",
			Chain: filter.MustNewChain(IDNoir.String(),
				filter.Noir(),
				filter.Vignette(1.2, 3.0),
			),
		},
		Entry{
			ID:          IDBloom,
			DisplayName: "Bloom",
			Chain: filter.MustNewChain(IDBloom.String(),
				filter.TransferEffect(),
				filter.Vignette(1.2, 3.0),
				filter.Bloom(10, 0.5),
			).WithCropToOriginalExtent(),
		},
	)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Get(id ID) (Entry, error) {
	for _, e := range c.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return Entry{}, ErrUnknownID{Value: id.String()}
}

// IDs returns the identifiers in catalog order.
func (c *Catalog) IDs() []ID {
	result := make([]ID, 0, len(c.entries))
	for _, e := range c.entries {
		result = append(result, e.ID)
	}
	return result
}

func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}
