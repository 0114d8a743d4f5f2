package reward

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRewardID    = errors.New("reward id must be positive")
	ErrDuplicateRewardID  = errors.New("duplicate reward id")
	ErrInvalidRewardName  = errors.New("reward name must not be empty")
	ErrNegativeThreshold  = errors.New("required stamps cannot be negative")
	ErrNegativeExpiryDays = errors.New("expiry days cannot be negative")
	ErrEmptyCatalog       = errors.New("catalog has no rewards")
)

const (
	TypeCoupon = "coupon"
	TypeTicket = "ticket"
	TypeEntry  = "entry"
	TypeRaffle = "raffle"
)

// Definition is one reward tier. Type is a free-form tag; the constants above are the ones in use.
type Definition struct {
	ID             int    `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Type           string `json:"type" yaml:"type"`
	RequiredStamps int    `json:"required_stamps" yaml:"required_stamps"`
	ExpiryDays     int    `json:"expiry_days" yaml:"expiry_days"`
}

func (d Definition) validate() error {
	if d.ID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRewardID, d.ID)
	}
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("%w: id %d", ErrInvalidRewardName, d.ID)
	}
	if d.RequiredStamps < 0 {
		return fmt.Errorf("%w: id %d", ErrNegativeThreshold, d.ID)
	}
	if d.ExpiryDays < 0 {
		return fmt.Errorf("%w: id %d", ErrNegativeExpiryDays, d.ID)
	}
	return nil
}

// Catalog is the immutable, ordered reward table. Declaration order is significant: it breaks
// ties when picking the next reward.
type Catalog struct {
	defs  []Definition
	index map[int]int
}

func NewCatalog(defs []Definition) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, ErrEmptyCatalog
	}

	c := &Catalog{
		defs:  make([]Definition, len(defs)),
		index: make(map[int]int, len(defs)),
	}
	for i, d := range defs {
		if err := d.validate(); err != nil {
			return nil, err
		}
		if _, exists := c.index[d.ID]; exists {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateRewardID, d.ID)
		}
		c.defs[i] = d
		c.index[d.ID] = i
	}
	return c, nil
}

// MustCatalog panics on invalid input; meant for package-level tables.
func MustCatalog(defs []Definition) *Catalog {
	c, err := NewCatalog(defs)
	if err != nil {
		panic(err)
	}
	return c
}

// DefaultCatalog is the reward table of the Paju publishing district stamp rally.
func DefaultCatalog() *Catalog {
	return MustCatalog([]Definition{
		{ID: 1, Name: "Forest of Wisdom cafe americano", Type: TypeCoupon, RequiredStamps: 5, ExpiryDays: 30},
		{ID: 2, Name: "Book cafe drink and dessert set 20% off", Type: TypeCoupon, RequiredStamps: 10, ExpiryDays: 30},
		{ID: 3, Name: "Letterpress workshop admission", Type: TypeTicket, RequiredStamps: 15, ExpiryDays: 60},
		{ID: 4, Name: "Publishing city guided tour", Type: TypeEntry, RequiredStamps: 20, ExpiryDays: 90},
		{ID: 5, Name: "Paju local specialty gift set draw", Type: TypeRaffle, RequiredStamps: 25, ExpiryDays: 30},
	})
}

func (c *Catalog) All() []Definition {
	out := make([]Definition, len(c.defs))
	copy(out, c.defs)
	return out
}

func (c *Catalog) Find(id int) (Definition, bool) {
	i, ok := c.index[id]
	if !ok {
		return Definition{}, false
	}
	return c.defs[i], true
}

func (c *Catalog) Len() int {
	return len(c.defs)
}
