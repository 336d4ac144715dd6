package roster

import (
	_ "embed"
	"fmt"
	"math/rand"

	"gopkg.in/yaml.v3"

	"github.com/medboard/medboard/internal/models"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Catalog holds the name and condition pools used for generated arrivals.
type Catalog struct {
	GivenNames []string    `yaml:"given_names"`
	Surnames   []string    `yaml:"surnames"`
	Conditions []Condition `yaml:"conditions"`
}

// Condition maps a diagnosis to its severity, preferred area and the
// supply a cure consumes.
type Condition struct {
	Diagnosis string `yaml:"diagnosis"`
	Severity  int    `yaml:"severity"`
	Area      string `yaml:"area"`
	SupplyID  int    `yaml:"supply_id"`
	Quantity  int    `yaml:"quantity"`
}

// LoadCatalog parses the embedded arrival catalog.
func LoadCatalog() (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		return nil, fmt.Errorf("parsing arrival catalog: %w", err)
	}
	if len(c.GivenNames) == 0 || len(c.Surnames) == 0 || len(c.Conditions) == 0 {
		return nil, fmt.Errorf("arrival catalog is incomplete")
	}
	for s := models.SeverityMild; s <= models.SeverityCritical; s++ {
		if len(c.conditionsFor(s)) == 0 {
			return nil, fmt.Errorf("arrival catalog has no severity-%d conditions", int(s))
		}
	}
	return &c, nil
}

func (c *Catalog) conditionsFor(s models.Severity) []Condition {
	var out []Condition
	for _, cond := range c.Conditions {
		if models.Severity(cond.Severity) == s {
			out = append(out, cond)
		}
	}
	return out
}

// ArrivalGenerator produces the day's walk-in patients. Between 3 and 8
// arrive per day: 20% critical, 30% moderate, 50% mild.
type ArrivalGenerator struct {
	catalog *Catalog
	rng     *rand.Rand
}

// NewArrivalGenerator builds a generator with the embedded catalog.
func NewArrivalGenerator(seed int64) (*ArrivalGenerator, error) {
	c, err := LoadCatalog()
	if err != nil {
		return nil, err
	}
	return &ArrivalGenerator{
		catalog: c,
		rng:     rand.New(rand.NewSource(seed)),
	}, nil
}

// Generate returns the new arrivals for a day. IDs are left zero for the
// state to assign sequentially.
func (g *ArrivalGenerator) Generate() []*models.Patient {
	n := 3 + g.rng.Intn(6)
	out := make([]*models.Patient, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.one())
	}
	return out
}

func (g *ArrivalGenerator) one() *models.Patient {
	sev := g.rollSeverity()
	conds := g.catalog.conditionsFor(sev)
	cond := conds[g.rng.Intn(len(conds))]

	return &models.Patient{
		Name:             g.catalog.GivenNames[g.rng.Intn(len(g.catalog.GivenNames))],
		Surname:          g.catalog.Surnames[g.rng.Intn(len(g.catalog.Surnames))],
		Age:              1 + g.rng.Intn(90),
		PreferredArea:    cond.Area,
		Diagnosis:        cond.Diagnosis,
		Severity:         sev,
		RequiredSupplyID: cond.SupplyID,
		RequiredQuantity: cond.Quantity,
	}
}

func (g *ArrivalGenerator) rollSeverity() models.Severity {
	switch r := g.rng.Intn(100); {
	case r < 20:
		return models.SeverityCritical
	case r < 50:
		return models.SeverityModerate
	default:
		return models.SeverityMild
	}
}
